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

var _ = Describe("Login", func() {
	Context("When logging in as an existing user", func() {
		var user *api.UserFixture

		BeforeEach(func() {
			user = api.CreateUserWithCleanup(client, ctx, config, &api.UserOverrides{Administrator: ptr.To(api.AdminFalse)})
		})

		Describe("Given the correct credentials", func() {
			It("should issue a bearer token", func() {
				resp, err := client.AuthenticateExisting(ctx, user.Payload.Email, user.Payload.Password)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusOK, schema.MessageLoginSucceeded)

				login, err := api.DecodeLogin(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(login.Authorization).To(HavePrefix("Bearer "))
			})

			It("should issue a token that is accepted by other routes", func() {
				resp, err := client.AuthenticateExisting(ctx, user.Payload.Email, user.Payload.Password)
				Expect(err).NotTo(HaveOccurred())

				login, err := api.DecodeLogin(resp)
				Expect(err).NotTo(HaveOccurred())

				// Authentication succeeds, authorization does not.
				_, resp, err = client.CreateProduct(ctx, login.Authorization, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusForbidden, schema.MessageAdminOnly)
			})
		})

		Describe("Given the wrong password", func() {
			It("should reject the login without saying which credential was wrong", func() {
				resp, err := client.AuthenticateExisting(ctx, user.Payload.Email, user.Payload.Password+"-wrong")
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, schema.MessageLoginFailed)
			})
		})
	})

	Context("When logging in as an unknown user", func() {
		It("should reject the login with the same message as a wrong password", func() {
			payload := api.GenerateUserPayload(nil)

			resp, err := client.AuthenticateExisting(ctx, payload.Email, payload.Password)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectMessage(resp, http.StatusUnauthorized, schema.MessageLoginFailed)
		})
	})

	Context("When the credentials are malformed", func() {
		It("should require an email", func() {
			resp, err := client.Post(ctx, client.Endpoints().Login(), api.RawPayload{"password": "teste"})
			Expect(err).NotTo(HaveOccurred())
			api.ExpectFieldError(resp, "email", schema.RequiredMessage("email"))
		})

		It("should require a password", func() {
			resp, err := client.Post(ctx, client.Endpoints().Login(), api.RawPayload{"email": "fulano@qa.com"})
			Expect(err).NotTo(HaveOccurred())
			api.ExpectFieldError(resp, "password", schema.RequiredMessage("password"))
		})

		It("should reject a blank password", func() {
			resp, err := client.AuthenticateExisting(ctx, "fulano@qa.com", "")
			Expect(err).NotTo(HaveOccurred())
			api.ExpectFieldError(resp, "password", schema.BlankMessage("password"))
		})

		It("should reject an invalid email", func() {
			resp, err := client.AuthenticateExisting(ctx, "fulano.qa.com", "teste")
			Expect(err).NotTo(HaveOccurred())
			api.ExpectFieldError(resp, "email", schema.MessageInvalidEmail)
		})
	})
})
