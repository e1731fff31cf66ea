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

// Package schema holds the response contract of the ServeRest API and
// validates live responses against it.
package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var contract []byte

var (
	ErrUndocumentedRoute = errors.New("route is not part of the contract")

	//nolint:gochecknoglobals
	loadOnce sync.Once
	//nolint:gochecknoglobals
	loadedDoc *openapi3.T
	//nolint:gochecknoglobals
	loadErr error
)

// Document returns the parsed and validated contract. It is parsed once.
func Document() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(contract)
		if err != nil {
			loadErr = fmt.Errorf("parsing contract: %w", err)
			return
		}

		if err := doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("validating contract: %w", err)
			return
		}

		loadedDoc = doc
	})

	return loadedDoc, loadErr
}

// Validator checks responses against the contract.
type Validator struct {
	router routers.Router
}

func NewValidator() (*Validator, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building contract router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

// ValidateResponse checks that status is documented for the route req was
// sent to, and that the body matches the schema for that status.
func (v *Validator) ValidateResponse(req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUndocumentedRoute, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(bytes.Clone(body))

	if err := openapi3filter.ValidateResponse(req.Context(), input); err != nil {
		return fmt.Errorf("%s %s returned %d: %w", req.Method, route.Path, status, err)
	}

	return nil
}
