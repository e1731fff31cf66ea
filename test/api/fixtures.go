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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// UserFixture is a registered user and the payload it was created with.
type UserFixture struct {
	ID      string
	Payload UserPayload
}

// ProductFixture is a registered product and the payload it was created with.
type ProductFixture struct {
	ID      string
	Payload ProductPayload
}

// CreateUserWithCleanup registers a user and schedules its deletion. The
// deletion runs whether the test passes or fails.
func CreateUserWithCleanup(client *APIClient, ctx context.Context, config *TestConfig, overrides *UserOverrides) *UserFixture {
	payload, resp, err := client.CreateUser(ctx, overrides)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusCreated), "creating user: %s", string(resp.Body))

	created, err := DecodeCreated(resp)
	Expect(err).NotTo(HaveOccurred())
	Expect(created.ID).NotTo(BeEmpty())

	GinkgoWriter.Printf("Created user with ID: %s\n", created.ID)

	if config.DebugLogging {
		GinkgoWriter.Println(spew.Sdump(payload))
	}

	DeleteUserOnCleanup(client, ctx, config, created.ID)

	return &UserFixture{
		ID:      created.ID,
		Payload: payload,
	}
}

// CreateProductWithCleanup registers a product with an administrator token and
// schedules its deletion with the same token.
func CreateProductWithCleanup(client *APIClient, ctx context.Context, config *TestConfig, token string, overrides *ProductOverrides) *ProductFixture {
	payload, resp, err := client.CreateProduct(ctx, token, overrides)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusCreated), "creating product: %s", string(resp.Body))

	created, err := DecodeCreated(resp)
	Expect(err).NotTo(HaveOccurred())
	Expect(created.ID).NotTo(BeEmpty())

	GinkgoWriter.Printf("Created product with ID: %s\n", created.ID)

	if config.DebugLogging {
		GinkgoWriter.Println(spew.Sdump(payload))
	}

	DeleteProductOnCleanup(client, ctx, config, created.ID, token)

	return &ProductFixture{
		ID:      created.ID,
		Payload: payload,
	}
}

// NewTokenWithCleanup registers a user, logs in as it and schedules the
// user's deletion. Cleanups run in reverse order, so products created with
// the token afterwards are gone before the user is.
func NewTokenWithCleanup(client *APIClient, ctx context.Context, config *TestConfig, admin bool) string {
	credentials, err := client.AuthenticateNewUser(ctx, admin)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Authenticated as user %s (administrator: %t)\n", credentials.UserID, admin)

	DeleteUserOnCleanup(client, ctx, config, credentials.UserID)

	return credentials.Token
}

// DeleteUserOnCleanup schedules deletion of a user created outside the
// fixtures, e.g. by a spec asserting on the create response itself.
func DeleteUserOnCleanup(client *APIClient, ctx context.Context, config *TestConfig, userID string) {
	if config.SkipCleanup {
		GinkgoWriter.Printf("Skipping cleanup of user: %s\n", userID)
		return
	}

	// The test's deadline may have passed by the time cleanup runs.
	cleanupCtx := context.WithoutCancel(ctx)

	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up user: %s\n", userID)

		resp, err := client.DeleteUser(cleanupCtx, userID)

		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", userID, err)
		case resp.StatusCode != http.StatusOK:
			GinkgoWriter.Printf("Warning: Failed to delete user %s: status %d\n", userID, resp.StatusCode)
		default:
			GinkgoWriter.Printf("Cleanup of user %s: %s\n", userID, resp.Message())
		}
	})
}

// DeleteProductOnCleanup schedules deletion of a product with token.
func DeleteProductOnCleanup(client *APIClient, ctx context.Context, config *TestConfig, productID, token string) {
	if config.SkipCleanup {
		GinkgoWriter.Printf("Skipping cleanup of product: %s\n", productID)
		return
	}

	cleanupCtx := context.WithoutCancel(ctx)

	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up product: %s\n", productID)

		resp, err := client.DeleteProduct(cleanupCtx, productID, token)

		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: Failed to delete product %s: %v\n", productID, err)
		case resp.StatusCode != http.StatusOK:
			GinkgoWriter.Printf("Warning: Failed to delete product %s: status %d\n", productID, resp.StatusCode)
		default:
			GinkgoWriter.Printf("Cleanup of product %s: %s\n", productID, resp.Message())
		}
	})
}

// ExpectStatus asserts the status code, printing the body and trace ID on failure.
func ExpectStatus(resp *Response, status int) {
	GinkgoHelper()

	Expect(resp).NotTo(BeNil())
	Expect(resp.StatusCode).To(Equal(status), "body: %s (trace ID: %s)", string(resp.Body), resp.TraceID)
}

// ExpectMessage asserts both the status code and the message of the body.
func ExpectMessage(resp *Response, status int, message string) {
	GinkgoHelper()

	ExpectStatus(resp, status)
	Expect(resp.Message()).To(Equal(message))
}

// ExpectFieldError asserts a 400 whose body maps field to message.
func ExpectFieldError(resp *Response, field, message string) {
	GinkgoHelper()

	ExpectStatus(resp, http.StatusBadRequest)

	fields, err := resp.FieldErrors()
	Expect(err).NotTo(HaveOccurred())
	Expect(fields).To(HaveKeyWithValue(field, message))
}
