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

var _ = Describe("Product Retrieval", Ordered, func() {
	var product *api.ProductFixture

	BeforeAll(func() {
		token := api.NewTokenWithCleanup(client, suiteCtx, config, true)
		product = api.CreateProductWithCleanup(client, suiteCtx, config, token, nil)
	})

	Context("When listing products", func() {
		Describe("Given no filter", func() {
			It("should report a count matching the listing", func() {
				resp, err := client.ListProducts(ctx, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				list, err := api.DecodeProductList(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(list.Quantity).To(Equal(len(list.Products)))
				Expect(list.Products).NotTo(BeEmpty())
			})
		})

		Describe("Given a name filter", func() {
			It("should return only the matching product", func() {
				resp, err := client.ListProducts(ctx, &api.ProductFilter{Name: product.Payload.Name})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				list, err := api.DecodeProductList(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(list.Quantity).To(Equal(1))
				Expect(list.Products[0].ID).To(Equal(product.ID))
			})
		})

		Describe("Given an id filter", func() {
			It("should return only the matching product", func() {
				resp, err := client.ListProducts(ctx, &api.ProductFilter{ID: product.ID})
				Expect(err).NotTo(HaveOccurred())

				list, err := api.DecodeProductList(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(list.Products).To(HaveLen(1))
				Expect(list.Products[0].ProductPayload).To(Equal(product.Payload))
			})
		})

		Describe("Given a filter nothing matches", func() {
			It("should return an empty listing", func() {
				resp, err := client.ListProducts(ctx, &api.ProductFilter{Name: api.GenerateTestID()})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				list, err := api.DecodeProductList(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(list.Quantity).To(BeZero())
				Expect(list.Products).To(BeEmpty())
			})
		})
	})

	Context("When fetching a product by id", func() {
		Describe("Given the product exists", func() {
			It("should return the stored record", func() {
				resp, err := client.GetProduct(ctx, product.ID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				record, err := api.DecodeProduct(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(record.ID).To(Equal(product.ID))
				Expect(record.ProductPayload).To(Equal(product.Payload))
			})

			It("should not need a token", func() {
				resp, err := client.GetProduct(ctx, product.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).NotTo(Equal(http.StatusUnauthorized))
			})
		})

		Describe("Given the product does not exist", func() {
			It("should answer with a bad request", func() {
				resp, err := client.GetProduct(ctx, api.GenerateID())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusBadRequest, schema.MessageProductNotFound)
			})
		})

		Describe("Given a malformed id", func() {
			It("should reject the id", func() {
				resp, err := client.GetProduct(ctx, "short")
				Expect(err).NotTo(HaveOccurred())
				api.ExpectFieldError(resp, "id", schema.MessageInvalidID)
			})
		})
	})
})
