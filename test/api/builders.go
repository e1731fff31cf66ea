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
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v7"

	utilrand "k8s.io/apimachinery/pkg/util/rand"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

const (
	MinProductPrice    = 10
	MaxProductPrice    = 2000
	MinProductQuantity = 1
	MaxProductQuantity = 1000

	IDLength = schema.IDLength

	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// UniqueSuffixLength is the length of the tag that keeps generated
	// emails and product names apart across runs.
	UniqueSuffixLength = 6
)

// UserOverrides replaces generated user fields. Nil fields keep the generated value.
type UserOverrides struct {
	Name          *string
	Email         *string
	Password      *string
	Administrator *AdminFlag
}

// ProductOverrides replaces generated product fields. Nil fields keep the generated value.
type ProductOverrides struct {
	Name        *string
	Price       *int
	Description *string
	Quantity    *int
}

// Generator produces randomized but valid payloads. A generator created with
// the same non-zero seed yields the same sequence of values, except for the
// unique suffix of emails and product names, which is never seeded so that a
// rerun does not collide with records left by an earlier one.
type Generator struct {
	lock  sync.Mutex
	faker *gofakeit.Faker
}

// NewGenerator creates a generator. A zero seed picks a random one.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
	}
}

//nolint:gochecknoglobals
var defaultGenerator atomic.Pointer[Generator]

//nolint:gochecknoinits
func init() {
	defaultGenerator.Store(NewGenerator(0))
}

// SetDefaultGenerator replaces the process-wide generator behind the
// package-level Generate functions.
func SetDefaultGenerator(generator *Generator) {
	defaultGenerator.Store(generator)
}

// DefaultGenerator returns the process-wide generator.
func DefaultGenerator() *Generator {
	return defaultGenerator.Load()
}

// GenerateUserPayload generates a user with the process-wide generator.
func GenerateUserPayload(overrides *UserOverrides) UserPayload {
	return DefaultGenerator().UserPayload(overrides)
}

// GenerateProductPayload generates a product with the process-wide generator.
func GenerateProductPayload(overrides *ProductOverrides) ProductPayload {
	return DefaultGenerator().ProductPayload(overrides)
}

// GenerateID returns an identifier shaped like the remote API's ids that,
// with overwhelming probability, addresses nothing.
func GenerateID() string {
	return DefaultGenerator().ID()
}

// GenerateTestID returns a short tag for naming test data.
func GenerateTestID() string {
	return DefaultGenerator().TestID("test")
}

// UserPayload returns a valid random user merged with overrides.
func (g *Generator) UserPayload(overrides *UserOverrides) UserPayload {
	g.lock.Lock()

	payload := UserPayload{
		Name:          g.faker.Name(),
		Email:         uniqueSuffix() + "." + strings.ToLower(g.faker.Email()),
		Password:      g.faker.Password(true, true, true, false, false, 12),
		Administrator: AdminFlagFor(g.faker.Bool()),
	}

	g.lock.Unlock()

	if overrides == nil {
		return payload
	}

	if overrides.Name != nil {
		payload.Name = *overrides.Name
	}

	if overrides.Email != nil {
		payload.Email = *overrides.Email
	}

	if overrides.Password != nil {
		payload.Password = *overrides.Password
	}

	if overrides.Administrator != nil {
		payload.Administrator = *overrides.Administrator
	}

	return payload
}

// ProductPayload returns a valid random product merged with overrides.
// Names carry a unique suffix as the remote API rejects duplicate names.
func (g *Generator) ProductPayload(overrides *ProductOverrides) ProductPayload {
	g.lock.Lock()

	payload := ProductPayload{
		Name:        fmt.Sprintf("%s %s", g.faker.ProductName(), uniqueSuffix()),
		Price:       g.faker.Number(MinProductPrice, MaxProductPrice),
		Description: g.faker.ProductDescription(),
		Quantity:    g.faker.Number(MinProductQuantity, MaxProductQuantity),
	}

	g.lock.Unlock()

	if overrides == nil {
		return payload
	}

	if overrides.Name != nil {
		payload.Name = *overrides.Name
	}

	if overrides.Price != nil {
		payload.Price = *overrides.Price
	}

	if overrides.Description != nil {
		payload.Description = *overrides.Description
	}

	if overrides.Quantity != nil {
		payload.Quantity = *overrides.Quantity
	}

	return payload
}

// ID returns IDLength uppercase alphanumerics.
func (g *Generator) ID() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.randomString(idAlphabet, IDLength)
}

// TestID returns prefix followed by eight random hex characters.
func (g *Generator) TestID(prefix string) string {
	g.lock.Lock()
	defer g.lock.Unlock()

	return fmt.Sprintf("%s-%s", prefix, g.randomString("0123456789abcdef", 8))
}

// uniqueSuffix is drawn outside the seeded faker.
func uniqueSuffix() string {
	return utilrand.String(UniqueSuffixLength)
}

// randomString must be called with the lock held.
func (g *Generator) randomString(alphabet string, n int) string {
	var b strings.Builder

	b.Grow(n)

	for range n {
		b.WriteByte(alphabet[g.faker.Number(0, len(alphabet)-1)])
	}

	return b.String()
}
