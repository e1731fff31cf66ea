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
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

type productList struct {
	Quantity int       `json:"quantidade"`
	Products []Product `json:"produtos"`
}

func productValues(p Product) map[string]string {
	return map[string]string{
		"_id":        p.ID,
		"nome":       p.Name,
		"preco":      strconv.Itoa(p.Price),
		"descricao":  p.Description,
		"quantidade": strconv.Itoa(p.Quantity),
	}
}

// listProducts handles GET /produtos, filtering on exact field values.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := readFilter(w, r, "nome", "preco", "descricao", "quantidade")
	if !ok {
		return
	}

	products := s.store.ListProducts(func(p Product) bool {
		return matches(filter, productValues(p))
	})

	if products == nil {
		products = []Product{}
	}

	writeJSON(w, http.StatusOK, productList{
		Quantity: len(products),
		Products: products,
	})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, productFields)
	if !ok {
		return
	}

	product, err := s.store.CreateProduct(decodeProduct(body))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeCreated(w, product.ID)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.store.GetProduct(chi.URLParam(r, "id"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, schema.MessageProductNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) replaceProduct(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, productFields)
	if !ok {
		return
	}

	product, created, err := s.store.ReplaceProduct(chi.URLParam(r, "id"), decodeProduct(body))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if created {
		writeCreated(w, product.ID)
		return
	}

	writeMessage(w, http.StatusOK, schema.MessageUpdated)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteProduct(chi.URLParam(r, "id")) {
		writeMessage(w, http.StatusOK, schema.MessageNothingDeleted)
		return
	}

	writeMessage(w, http.StatusOK, schema.MessageDeleted)
}
