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
	"net/http"
	"sync"

	"github.com/go-logr/logr"
	"github.com/spjmurray/go-util/pkg/set"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// ResourceTracker remembers what a test created so that it can be removed
// again, even when the test fails half way through. Products are deleted
// before users as the token a product was created with stops working once
// its user is gone.
type ResourceTracker struct {
	client *APIClient
	logger logr.Logger

	lock             sync.Mutex
	users            []string
	products         []string
	releasedUsers    []string
	releasedProducts []string
	productTokens    map[string]string
}

func NewResourceTracker(client *APIClient, logger logr.Logger) *ResourceTracker {
	return &ResourceTracker{
		client:        client,
		logger:        logger,
		productTokens: map[string]string{},
	}
}

func (t *ResourceTracker) TrackUser(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.users = append(t.users, id)
}

// TrackProduct records a product and the administrator token to delete it
// with. An empty token makes cleanup register a throwaway administrator.
func (t *ResourceTracker) TrackProduct(id, token string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.products = append(t.products, id)

	if token != "" {
		t.productTokens[id] = token
	}
}

// ReleaseUser marks a user as already deleted by the test itself.
func (t *ResourceTracker) ReleaseUser(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.releasedUsers = append(t.releasedUsers, id)
}

// ReleaseProduct marks a product as already deleted by the test itself.
func (t *ResourceTracker) ReleaseProduct(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.releasedProducts = append(t.releasedProducts, id)
}

// PendingUsers returns the users that cleanup would delete.
func (t *ResourceTracker) PendingUsers() set.Set[string] {
	t.lock.Lock()
	defer t.lock.Unlock()

	return set.New[string](t.users...).Difference(set.New[string](t.releasedUsers...))
}

// PendingProducts returns the products that cleanup would delete.
func (t *ResourceTracker) PendingProducts() set.Set[string] {
	t.lock.Lock()
	defer t.lock.Unlock()

	return set.New[string](t.products...).Difference(set.New[string](t.releasedProducts...))
}

// Cleanup deletes everything still pending. Every deletion is attempted and
// the failures are aggregated. The tracker is empty afterwards.
func (t *ResourceTracker) Cleanup(ctx context.Context) error {
	users := t.PendingUsers()
	products := t.PendingProducts()

	t.lock.Lock()
	tokens := t.productTokens
	t.users, t.products, t.releasedUsers, t.releasedProducts = nil, nil, nil, nil
	t.productTokens = map[string]string{}
	t.lock.Unlock()

	var errs []error

	var fallback string

	for id := range products.All() {
		token, ok := tokens[id]
		if !ok {
			if fallback == "" {
				credentials, err := t.client.AuthenticateNewUser(ctx, true)
				if err != nil {
					errs = append(errs, fmt.Errorf("obtaining administrator token to delete product %s: %w", id, err))
					continue
				}

				fallback = credentials.Token

				defer func() {
					if err := t.deleteUser(ctx, credentials.UserID); err != nil {
						t.logger.Error(err, "deleting cleanup administrator", "id", credentials.UserID)
					}
				}()
			}

			token = fallback
		}

		if err := t.deleteProduct(ctx, id, token); err != nil {
			errs = append(errs, err)
		}
	}

	for id := range users.All() {
		if err := t.deleteUser(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	return utilerrors.NewAggregate(errs)
}

func (t *ResourceTracker) deleteProduct(ctx context.Context, id, token string) error {
	resp, err := t.client.DeleteProduct(ctx, id, token)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: deleting product %s: got %d, body: %s", ErrUnexpectedStatus, id, resp.StatusCode, string(resp.Body))
	}

	t.logger.V(1).Info("deleted product", "id", id, "message", resp.Message())

	return nil
}

func (t *ResourceTracker) deleteUser(ctx context.Context, id string) error {
	resp, err := t.client.DeleteUser(ctx, id)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: deleting user %s: got %d, body: %s", ErrUnexpectedStatus, id, resp.StatusCode, string(resp.Body))
	}

	t.logger.V(1).Info("deleted user", "id", id, "message", resp.Message())

	return nil
}
