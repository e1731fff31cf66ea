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
	"errors"
	"fmt"
	"net/http"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/ptr"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// Credentials describes a user created purely to obtain a token.
type Credentials struct {
	UserID  string
	Payload UserPayload
	Token   string
}

// AuthenticateExisting logs in. The remote API answers 401 with the same
// message for an unknown email and a wrong password.
func (c *APIClient) AuthenticateExisting(ctx context.Context, email, password string) (*Response, error) {
	resp, err := c.Post(ctx, c.endpoints.Login(), LoginPayload{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return resp, nil
}

// AuthenticateNew creates a fresh user and returns a token for it.
func (c *APIClient) AuthenticateNew(ctx context.Context, admin bool) (string, error) {
	credentials, err := c.AuthenticateNewUser(ctx, admin)
	if err != nil {
		return "", err
	}

	return credentials.Token, nil
}

// AuthenticateNewUser is AuthenticateNew that also reports the user it
// created, so that the caller can delete it afterwards. A user created by a
// call that then fails is deleted before returning.
func (c *APIClient) AuthenticateNewUser(ctx context.Context, admin bool) (*Credentials, error) {
	payload, resp, err := c.CreateUser(ctx, &UserOverrides{Administrator: ptr.To(AdminFlagFor(admin))})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: creating user: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, http.StatusCreated, resp.StatusCode, string(resp.Body), resp.TraceID)
	}

	created, err := DecodeCreated(resp)
	if err != nil {
		return nil, err
	}

	resp, err = c.AuthenticateExisting(ctx, payload.Email, payload.Password)
	if err != nil {
		return nil, c.discardUser(ctx, created.ID, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: logging in: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, http.StatusOK, resp.StatusCode, string(resp.Body), resp.TraceID)
		return nil, c.discardUser(ctx, created.ID, err)
	}

	login, err := DecodeLogin(resp)
	if err != nil {
		return nil, c.discardUser(ctx, created.ID, err)
	}

	if login.Authorization == "" {
		err := fmt.Errorf("%w: login response carries no authorization (trace ID: %s)", ErrUnexpectedStatus, resp.TraceID)
		return nil, c.discardUser(ctx, created.ID, err)
	}

	return &Credentials{
		UserID:  created.ID,
		Payload: payload,
		Token:   login.Authorization,
	}, nil
}

// discardUser deletes a user whose credentials could not be completed, as
// the caller never learns its id. The deletion outlives ctx being done,
// which may be why the login failed.
func (c *APIClient) discardUser(ctx context.Context, userID string, cause error) error {
	resp, err := c.DeleteUser(context.WithoutCancel(ctx), userID)
	if err != nil {
		return utilerrors.NewAggregate([]error{cause, err})
	}

	if resp.StatusCode != http.StatusOK {
		return utilerrors.NewAggregate([]error{cause, fmt.Errorf("%w: deleting user %s: got %d, body: %s", ErrUnexpectedStatus, userID, resp.StatusCode, string(resp.Body))})
	}

	c.logger.V(1).Info("deleted user after failed login", "id", userID)

	return cause
}
