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

var _ = Describe("Discovery and Metadata", func() {
	Context("When listing collections", func() {
		DescribeTable("should answer with JSON",
			func(path func() string) {
				resp, err := client.Get(ctx, path())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				Expect(resp.Header.Get("Content-Type")).To(HavePrefix("application/json"))
			},
			Entry("for users", func() string { return client.Endpoints().Users() }),
			Entry("for products", func() string { return client.Endpoints().Products() }),
		)

		It("should only list administrators when asked to", func() {
			api.CreateUserWithCleanup(client, ctx, config, nil)

			resp, err := client.ListUsers(ctx, &api.UserFilter{Administrator: api.AdminTrue})
			Expect(err).NotTo(HaveOccurred())

			list, err := api.DecodeUserList(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Quantity).To(Equal(len(list.Users)))

			for _, user := range list.Users {
				Expect(user.Administrator).To(Equal(api.AdminTrue))
				Expect(schema.IsValidID(user.ID)).To(BeTrue(), "id %q", user.ID)
			}
		})

		It("should identify every product with a well formed id", func() {
			resp, err := client.ListProducts(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			list, err := api.DecodeProductList(resp)
			Expect(err).NotTo(HaveOccurred())

			for _, product := range list.Products {
				Expect(schema.IsValidID(product.ID)).To(BeTrue(), "id %q", product.ID)
			}
		})
	})
})
