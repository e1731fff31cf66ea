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
)

// UserFilter narrows a user listing. Empty fields are not sent.
type UserFilter struct {
	ID            string
	Name          string
	Email         string
	Password      string
	Administrator AdminFlag
}

func (f *UserFilter) query() url.Values {
	query := url.Values{}

	if f == nil {
		return query
	}

	setIfNotEmpty(query, "_id", f.ID)
	setIfNotEmpty(query, "nome", f.Name)
	setIfNotEmpty(query, "email", f.Email)
	setIfNotEmpty(query, "password", f.Password)
	setIfNotEmpty(query, "administrador", string(f.Administrator))

	return query
}

func setIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

// CreateUser generates a user merged with overrides and registers it.
// Both the payload sent and the raw response are returned so callers can
// assert on either.
func (c *APIClient) CreateUser(ctx context.Context, overrides *UserOverrides) (UserPayload, *Response, error) {
	payload := c.generator.UserPayload(overrides)

	resp, err := c.Post(ctx, c.endpoints.Users(), payload)
	if err != nil {
		return payload, nil, fmt.Errorf("creating user: %w", err)
	}

	return payload, resp, nil
}

// GetUser fetches a single user. The remote API answers 400 for unknown ids.
func (c *APIClient) GetUser(ctx context.Context, userID string) (*Response, error) {
	resp, err := c.Get(ctx, c.endpoints.User(userID))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return resp, nil
}

// ListUsers fetches the user collection, optionally filtered.
func (c *APIClient) ListUsers(ctx context.Context, filter *UserFilter) (*Response, error) {
	resp, err := c.Get(ctx, c.endpoints.Users(), WithQuery(filter.query()))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return resp, nil
}

// UpdateUser replaces a user. The remote API has full-replace semantics, so
// payload must be the complete record. An unknown id creates a new user.
func (c *APIClient) UpdateUser(ctx context.Context, userID string, payload UserPayload) (UserPayload, *Response, error) {
	resp, err := c.Put(ctx, c.endpoints.User(userID), payload)
	if err != nil {
		return payload, nil, fmt.Errorf("updating user: %w", err)
	}

	return payload, resp, nil
}

func (c *APIClient) DeleteUser(ctx context.Context, userID string) (*Response, error) {
	resp, err := c.Delete(ctx, c.endpoints.User(userID))
	if err != nil {
		return nil, fmt.Errorf("deleting user: %w", err)
	}

	return resp, nil
}
