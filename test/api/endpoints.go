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
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// pathParam styles an identifier the way generated OpenAPI clients do.
func pathParam(name, value string) string {
	styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		// Only non-primitive values fail to style.
		return url.PathEscape(value)
	}

	return styled
}

// Authentication endpoints.
func (e *Endpoints) Login() string {
	return "/login"
}

// User endpoints.
func (e *Endpoints) Users() string {
	return "/usuarios"
}

func (e *Endpoints) User(userID string) string {
	return "/usuarios/" + pathParam("_id", userID)
}

// Product endpoints.
func (e *Endpoints) Products() string {
	return "/produtos"
}

func (e *Endpoints) Product(productID string) string {
	return "/produtos/" + pathParam("_id", productID)
}
