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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/serverest-qa/api-tests/test/api"
	"github.com/serverest-qa/api-tests/test/api/schema"
)

var _ = Describe("User Deletion", func() {
	Context("When deleting a user", func() {
		Describe("Given the user exists", func() {
			It("should delete the user", func() {
				user := api.CreateUserWithCleanup(client, ctx, config, nil)

				resp, err := client.DeleteUser(ctx, user.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageDeleted)

				resp, err = client.GetUser(ctx, user.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusBadRequest, schema.MessageUserNotFound)
			})

			It("should invalidate tokens issued to the user", func() {
				credentials, err := client.AuthenticateNewUser(ctx, true)
				Expect(err).NotTo(HaveOccurred())

				api.DeleteUserOnCleanup(client, ctx, config, credentials.UserID)

				resp, err := client.DeleteUser(ctx, credentials.UserID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				_, resp, err = client.CreateProduct(ctx, credentials.Token, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, schema.MessageInvalidToken)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should succeed without deleting anything", func() {
				resp, err := client.DeleteUser(ctx, api.GenerateID())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageNothingDeleted)
			})
		})

		Describe("Given the user was already deleted", func() {
			It("should succeed without deleting anything", func() {
				user := api.CreateUserWithCleanup(client, ctx, config, nil)

				resp, err := client.DeleteUser(ctx, user.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				resp, err = client.DeleteUser(ctx, user.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageNothingDeleted)
			})
		})
	})
})
