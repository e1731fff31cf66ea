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

var _ = Describe("Product Deletion", Ordered, func() {
	var (
		adminToken   string
		regularToken string
	)

	BeforeAll(func() {
		adminToken = api.NewTokenWithCleanup(client, suiteCtx, config, true)
		regularToken = api.NewTokenWithCleanup(client, suiteCtx, config, false)
	})

	Context("When deleting a product", func() {
		Describe("Given an administrator token", func() {
			It("should delete the product", func() {
				product := api.CreateProductWithCleanup(client, ctx, config, adminToken, nil)

				resp, err := client.DeleteProduct(ctx, product.ID, adminToken)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageDeleted)

				resp, err = client.GetProduct(ctx, product.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusBadRequest, schema.MessageProductNotFound)
			})

			It("should succeed without deleting anything for an unknown id", func() {
				resp, err := client.DeleteProduct(ctx, api.GenerateID(), adminToken)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageNothingDeleted)
			})
		})

		Describe("Given a regular user's token", func() {
			It("should reject the deletion and keep the product", func() {
				product := api.CreateProductWithCleanup(client, ctx, config, adminToken, nil)

				resp, err := client.DeleteProduct(ctx, product.ID, regularToken)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusForbidden, schema.MessageAdminOnly)

				resp, err = client.GetProduct(ctx, product.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
			})
		})

		Describe("Given no token", func() {
			It("should reject the deletion as unauthenticated", func() {
				product := api.CreateProductWithCleanup(client, ctx, config, adminToken, nil)

				resp, err := client.Delete(ctx, client.Endpoints().Product(product.ID))
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, schema.MessageInvalidToken)
			})
		})
	})
})
