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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/serverest-qa/api-tests/test/api"
)

var ErrMismatch = errors.New("stored record differs from the one sent")

// smoke drives one user and one product through their whole lifecycle.
type smoke struct {
	client  *api.APIClient
	tracker *api.ResourceTracker
	logger  logr.Logger
}

func newSmoke(client *api.APIClient, logger logr.Logger) *smoke {
	return &smoke{
		client:  client,
		tracker: api.NewResourceTracker(client, logger.WithName("tracker")),
		logger:  logger,
	}
}

func expectStatus(step string, resp *api.Response, status int) error {
	if resp.StatusCode != status {
		return fmt.Errorf("%w: %s: expected %d, got %d, body: %s (trace ID: %s)", api.ErrUnexpectedStatus, step, status, resp.StatusCode, string(resp.Body), resp.TraceID)
	}

	return nil
}

// run executes the flow. Unless keep is set, anything left behind by a
// failed step is deleted before returning.
func (s *smoke) run(ctx context.Context, keep bool) (err error) {
	if !keep {
		defer func() {
			// The run context may have expired, which is one reason to be here.
			if cleanupErr := s.tracker.Cleanup(context.WithoutCancel(ctx)); cleanupErr != nil {
				err = utilerrors.NewAggregate([]error{err, cleanupErr})
			}
		}()
	}

	credentials, err := s.client.AuthenticateNewUser(ctx, true)
	if err != nil {
		return err
	}

	s.tracker.TrackUser(credentials.UserID)
	s.logger.Info("administrator created and logged in", "id", credentials.UserID, "email", credentials.Payload.Email)

	payload, resp, err := s.client.CreateProduct(ctx, credentials.Token, nil)
	if err != nil {
		return err
	}

	if err := expectStatus("creating product", resp, http.StatusCreated); err != nil {
		return err
	}

	created, err := api.DecodeCreated(resp)
	if err != nil {
		return err
	}

	s.tracker.TrackProduct(created.ID, credentials.Token)
	s.logger.Info("product created", "id", created.ID, "name", payload.Name)

	if err := s.verifyProduct(ctx, created.ID, payload); err != nil {
		return err
	}

	replacement := s.client.Generator().ProductPayload(nil)

	if _, resp, err = s.client.UpdateProduct(ctx, created.ID, replacement, credentials.Token); err != nil {
		return err
	}

	if err := expectStatus("updating product", resp, http.StatusOK); err != nil {
		return err
	}

	if err := s.verifyProduct(ctx, created.ID, replacement); err != nil {
		return err
	}

	s.logger.Info("product updated", "id", created.ID, "name", replacement.Name)

	if keep {
		s.logger.Info("keeping test data", "user", credentials.UserID, "product", created.ID)
		return nil
	}

	if resp, err = s.client.DeleteProduct(ctx, created.ID, credentials.Token); err != nil {
		return err
	}

	if err := expectStatus("deleting product", resp, http.StatusOK); err != nil {
		return err
	}

	s.tracker.ReleaseProduct(created.ID)
	s.logger.Info("product deleted", "id", created.ID, "message", resp.Message())

	if resp, err = s.client.DeleteUser(ctx, credentials.UserID); err != nil {
		return err
	}

	if err := expectStatus("deleting user", resp, http.StatusOK); err != nil {
		return err
	}

	s.tracker.ReleaseUser(credentials.UserID)
	s.logger.Info("user deleted", "id", credentials.UserID, "message", resp.Message())

	return nil
}

func (s *smoke) verifyProduct(ctx context.Context, id string, expected api.ProductPayload) error {
	resp, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := expectStatus("reading product", resp, http.StatusOK); err != nil {
		return err
	}

	record, err := api.DecodeProduct(resp)
	if err != nil {
		return err
	}

	if diff := cmp.Diff(expected, record.ProductPayload); diff != "" {
		return fmt.Errorf("%w: product %s (-sent +stored):\n%s", ErrMismatch, id, diff)
	}

	return nil
}
