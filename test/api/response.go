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

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the outcome of a single request. Any status code is a valid
// response; interpreting it is left to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// JSON decodes the body into v.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response body (status %d, trace ID: %s): %w", r.StatusCode, r.TraceID, err)
	}

	return nil
}

// Message returns the "message" field of the body, or an empty string.
func (r *Response) Message() string {
	var body struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}

	return body.Message
}

// FieldErrors returns the body as a field to message map, the shape of
// validation failures.
func (r *Response) FieldErrors() (map[string]string, error) {
	var fields map[string]string
	if err := r.JSON(&fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// DecodeCreated decodes a create response.
func DecodeCreated(r *Response) (*CreatedResponse, error) {
	var created CreatedResponse
	if err := r.JSON(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

// DecodeLogin decodes a login response.
func DecodeLogin(r *Response) (*LoginResponse, error) {
	var login LoginResponse
	if err := r.JSON(&login); err != nil {
		return nil, err
	}

	return &login, nil
}

func DecodeUser(r *Response) (*UserRecord, error) {
	var user UserRecord
	if err := r.JSON(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func DecodeUserList(r *Response) (*UserList, error) {
	var users UserList
	if err := r.JSON(&users); err != nil {
		return nil, err
	}

	return &users, nil
}

func DecodeProduct(r *Response) (*ProductRecord, error) {
	var product ProductRecord
	if err := r.JSON(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func DecodeProductList(r *Response) (*ProductList, error) {
	var products ProductList
	if err := r.JSON(&products); err != nil {
		return nil, err
	}

	return &products, nil
}
