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
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProductFilter narrows a product listing. Zero fields are not sent.
type ProductFilter struct {
	ID          string
	Name        string
	Price       int
	Description string
	Quantity    int
}

func (f *ProductFilter) query() url.Values {
	query := url.Values{}

	if f == nil {
		return query
	}

	setIfNotEmpty(query, "_id", f.ID)
	setIfNotEmpty(query, "nome", f.Name)
	setIfNotEmpty(query, "descricao", f.Description)

	if f.Price != 0 {
		query.Set("preco", strconv.Itoa(f.Price))
	}

	if f.Quantity != 0 {
		query.Set("quantidade", strconv.Itoa(f.Quantity))
	}

	return query
}

// CreateProduct generates a product merged with overrides and registers it
// using token, which must belong to an administrator.
func (c *APIClient) CreateProduct(ctx context.Context, token string, overrides *ProductOverrides) (ProductPayload, *Response, error) {
	payload := c.generator.ProductPayload(overrides)

	resp, err := c.Post(ctx, c.endpoints.Products(), payload, WithAuthorization(token))
	if err != nil {
		return payload, nil, fmt.Errorf("creating product: %w", err)
	}

	return payload, resp, nil
}

// GetProduct fetches a single product. The remote API answers 400 for unknown ids.
func (c *APIClient) GetProduct(ctx context.Context, productID string) (*Response, error) {
	resp, err := c.Get(ctx, c.endpoints.Product(productID))
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	return resp, nil
}

// ListProducts fetches the product collection, optionally filtered.
func (c *APIClient) ListProducts(ctx context.Context, filter *ProductFilter) (*Response, error) {
	resp, err := c.Get(ctx, c.endpoints.Products(), WithQuery(filter.query()))
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return resp, nil
}

// UpdateProduct replaces a product with the complete record in payload.
func (c *APIClient) UpdateProduct(ctx context.Context, productID string, payload ProductPayload, token string) (ProductPayload, *Response, error) {
	resp, err := c.Put(ctx, c.endpoints.Product(productID), payload, WithAuthorization(token))
	if err != nil {
		return payload, nil, fmt.Errorf("updating product: %w", err)
	}

	return payload, resp, nil
}

func (c *APIClient) DeleteProduct(ctx context.Context, productID, token string) (*Response, error) {
	resp, err := c.Delete(ctx, c.endpoints.Product(productID), WithAuthorization(token))
	if err != nil {
		return nil, fmt.Errorf("deleting product: %w", err)
	}

	return resp, nil
}
