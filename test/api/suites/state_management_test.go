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

	"k8s.io/utils/ptr"

	"github.com/serverest-qa/api-tests/test/api"
	"github.com/serverest-qa/api-tests/test/api/schema"
)

var _ = Describe("State Management", func() {
	Context("When following a user through its lifecycle", func() {
		It("should reflect every change in reads and listings", func() {
			// Given: A freshly registered user
			user := api.CreateUserWithCleanup(client, ctx, config, &api.UserOverrides{Administrator: ptr.To(api.AdminFalse)})

			// When: The user is read twice
			first, err := client.GetUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(first, http.StatusOK)

			second, err := client.GetUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())

			// Then: Both reads agree
			Expect(second.Body).To(MatchJSON(first.Body))

			// When: The user is promoted
			promoted := user.Payload
			promoted.Administrator = api.AdminTrue

			_, resp, err := client.UpdateUser(ctx, user.ID, promoted)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectMessage(resp, http.StatusOK, schema.MessageUpdated)

			// Then: Listing administrators includes the user
			resp, err = client.ListUsers(ctx, &api.UserFilter{ID: user.ID, Administrator: api.AdminTrue})
			Expect(err).NotTo(HaveOccurred())

			list, err := api.DecodeUserList(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Users).To(HaveLen(1))
			Expect(list.Users[0].UserPayload).To(Equal(promoted))

			// And: A login as the user yields an administrator token
			resp, err = client.AuthenticateExisting(ctx, promoted.Email, promoted.Password)
			Expect(err).NotTo(HaveOccurred())

			login, err := api.DecodeLogin(resp)
			Expect(err).NotTo(HaveOccurred())

			_, resp, err = client.CreateProduct(ctx, login.Authorization, nil)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(resp, http.StatusCreated)

			product, err := api.DecodeCreated(resp)
			Expect(err).NotTo(HaveOccurred())

			// The token dies with the user, so the product goes first.
			resp, err = client.DeleteProduct(ctx, product.ID, login.Authorization)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectMessage(resp, http.StatusOK, schema.MessageDeleted)

			// When: The user is deleted
			resp, err = client.DeleteUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(resp, http.StatusOK)

			// Then: Listings no longer include it
			resp, err = client.ListUsers(ctx, &api.UserFilter{ID: user.ID})
			Expect(err).NotTo(HaveOccurred())

			list, err = api.DecodeUserList(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Users).To(BeEmpty())
		})
	})

	Context("When following a product through its lifecycle", func() {
		It("should keep the record stable until it is replaced", func() {
			token := api.NewTokenWithCleanup(client, ctx, config, true)
			product := api.CreateProductWithCleanup(client, ctx, config, token, nil)

			for range 3 {
				resp, err := client.GetProduct(ctx, product.ID)
				Expect(err).NotTo(HaveOccurred())

				record, err := api.DecodeProduct(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(record.ProductPayload).To(Equal(product.Payload))
			}

			restocked := product.Payload
			restocked.Quantity++

			_, resp, err := client.UpdateProduct(ctx, product.ID, restocked, token)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectStatus(resp, http.StatusOK)

			resp, err = client.ListProducts(ctx, &api.ProductFilter{ID: product.ID})
			Expect(err).NotTo(HaveOccurred())

			list, err := api.DecodeProductList(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Products).To(HaveLen(1))
			Expect(list.Products[0].Quantity).To(Equal(restocked.Quantity))
		})
	})
})
