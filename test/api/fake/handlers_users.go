/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

type userList struct {
	Quantity int    `json:"quantidade"`
	Users    []User `json:"usuarios"`
}

func userValues(u User) map[string]string {
	return map[string]string{
		"_id":           u.ID,
		"nome":          u.Name,
		"email":         u.Email,
		"password":      u.Password,
		"administrador": u.Administrator,
	}
}

// listUsers handles GET /usuarios, filtering on exact field values.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	filter, ok := readFilter(w, r, "nome", "email", "password", "administrador")
	if !ok {
		return
	}

	users := s.store.ListUsers(func(u User) bool {
		return matches(filter, userValues(u))
	})

	if users == nil {
		users = []User{}
	}

	writeJSON(w, http.StatusOK, userList{
		Quantity: len(users),
		Users:    users,
	})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, userFields)
	if !ok {
		return
	}

	user, err := s.store.CreateUser(decodeUser(body))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeCreated(w, user.ID)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.GetUser(chi.URLParam(r, "id"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, schema.MessageUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// replaceUser handles PUT /usuarios/{id}. An unknown id creates the user
// under a newly assigned id.
func (s *Server) replaceUser(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, userFields)
	if !ok {
		return
	}

	user, created, err := s.store.ReplaceUser(chi.URLParam(r, "id"), decodeUser(body))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if created {
		writeCreated(w, user.ID)
		return
	}

	writeMessage(w, http.StatusOK, schema.MessageUpdated)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteUser(chi.URLParam(r, "id")) {
		writeMessage(w, http.StatusOK, schema.MessageNothingDeleted)
		return
	}

	writeMessage(w, http.StatusOK, schema.MessageDeleted)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, schema.MessageDuplicateEmail)
	case errors.Is(err, ErrDuplicateName):
		writeMessage(w, http.StatusBadRequest, schema.MessageDuplicateName)
	default:
		s.logger.Error(err, "store failure")
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}
