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
	"net/http"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

// login handles POST /login. Unknown emails and wrong passwords get the
// same answer.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, loginFields)
	if !ok {
		return
	}

	user, ok := s.store.FindUserByCredentials(stringValue(body["email"]), stringValue(body["password"]))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, schema.MessageLoginFailed)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error(err, "issuing token", "email", user.Email)
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":       schema.MessageLoginSucceeded,
		"authorization": token,
	})
}
