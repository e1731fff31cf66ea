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

var _ = Describe("Product Registration", Ordered, func() {
	var (
		adminToken   string
		regularToken string
	)

	BeforeAll(func() {
		adminToken = api.NewTokenWithCleanup(client, suiteCtx, config, true)
		regularToken = api.NewTokenWithCleanup(client, suiteCtx, config, false)
	})

	Context("When registering a product as an administrator", func() {
		Describe("Given a valid payload", func() {
			It("should register the product", func() {
				payload, resp, err := client.CreateProduct(ctx, adminToken, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusCreated, schema.MessageCreated)

				created, err := api.DecodeCreated(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(created.ID).NotTo(BeEmpty())

				api.DeleteProductOnCleanup(client, ctx, config, created.ID, adminToken)

				resp, err = client.GetProduct(ctx, created.ID)
				Expect(err).NotTo(HaveOccurred())

				product, err := api.DecodeProduct(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(product.ProductPayload).To(Equal(payload))
			})
		})

		Describe("Given a name that is already registered", func() {
			It("should reject the registration", func() {
				existing := api.CreateProductWithCleanup(client, ctx, config, adminToken, nil)

				_, resp, err := client.CreateProduct(ctx, adminToken, &api.ProductOverrides{Name: ptr.To(existing.Payload.Name)})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusBadRequest, schema.MessageDuplicateName)
			})
		})

		Describe("Given an invalid payload", func() {
			DescribeTable("should reject the registration",
				func(mutate func(api.RawPayload), field, message string) {
					payload, err := api.ToRawPayload(api.GenerateProductPayload(nil))
					Expect(err).NotTo(HaveOccurred())

					mutate(payload)

					resp, err := client.Post(ctx, client.Endpoints().Products(), payload, api.WithAuthorization(adminToken))
					Expect(err).NotTo(HaveOccurred())
					api.ExpectFieldError(resp, field, message)
				},
				Entry("without a name",
					func(p api.RawPayload) { delete(p, "nome") }, "nome", schema.RequiredMessage("nome")),
				Entry("with a blank name",
					func(p api.RawPayload) { p["nome"] = "" }, "nome", schema.BlankMessage("nome")),
				Entry("without a price",
					func(p api.RawPayload) { delete(p, "preco") }, "preco", schema.RequiredMessage("preco")),
				Entry("with a textual price",
					func(p api.RawPayload) { p["preco"] = "caro" }, "preco", schema.NotNumberMessage("preco")),
				Entry("without a description",
					func(p api.RawPayload) { delete(p, "descricao") }, "descricao", schema.RequiredMessage("descricao")),
				Entry("with a numeric description",
					func(p api.RawPayload) { p["descricao"] = 42 }, "descricao", schema.NotStringMessage("descricao")),
				Entry("without a quantity",
					func(p api.RawPayload) { delete(p, "quantidade") }, "quantidade", schema.RequiredMessage("quantidade")),
			)
		})
	})

	Context("When registering a product without administrator rights", func() {
		Describe("Given no token", func() {
			It("should reject the request as unauthenticated", func() {
				resp, err := client.Post(ctx, client.Endpoints().Products(), api.GenerateProductPayload(nil))
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, schema.MessageInvalidToken)
			})
		})

		Describe("Given a regular user's token", func() {
			It("should reject the request as forbidden", func() {
				_, resp, err := client.CreateProduct(ctx, regularToken, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusForbidden, schema.MessageAdminOnly)
			})
		})
	})
})
