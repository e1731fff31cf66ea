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

package fake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

var ErrMalformedBody = errors.New("request body is not a JSON object")

type fieldKind int

const (
	stringField fieldKind = iota
	emailField
	adminField
	priceField
	quantityField
)

type field struct {
	name string
	kind fieldKind
}

//nolint:gochecknoglobals
var (
	userFields = []field{
		{name: "nome", kind: stringField},
		{name: "email", kind: emailField},
		{name: "password", kind: stringField},
		{name: "administrador", kind: adminField},
	}

	productFields = []field{
		{name: "nome", kind: stringField},
		{name: "preco", kind: priceField},
		{name: "descricao", kind: stringField},
		{name: "quantidade", kind: quantityField},
	}

	loginFields = []field{
		{name: "email", kind: emailField},
		{name: "password", kind: stringField},
	}
)

// fieldErrors maps a field name to the message describing what is wrong
// with it. Every field is checked, not just the first failing one.
type fieldErrors map[string]string

// decodeBody reads a JSON object, keeping numbers as json.Number so that
// integers can be told apart from fractions.
func decodeBody(r io.Reader) (map[string]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]interface{}{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if body == nil {
		body = map[string]interface{}{}
	}

	return body, nil
}

func validate(body map[string]interface{}, fields []field) fieldErrors {
	errs := fieldErrors{}

	known := map[string]bool{}

	for _, f := range fields {
		known[f.name] = true

		value, ok := body[f.name]
		if !ok {
			errs[f.name] = schema.RequiredMessage(f.name)
			continue
		}

		if message := f.check(value); message != "" {
			errs[f.name] = message
		}
	}

	for key := range body {
		if !known[key] {
			errs[key] = schema.NotAllowedMessage(key)
		}
	}

	return errs
}

func (f field) check(value interface{}) string {
	switch f.kind {
	case stringField:
		return checkString(f.name, value)
	case emailField:
		if message := checkString(f.name, value); message != "" {
			return message
		}

		if !isEmail(value.(string)) { //nolint:forcetypeassert // checked above
			return schema.MessageInvalidEmail
		}
	case adminField:
		if s, ok := value.(string); !ok || (s != "true" && s != "false") {
			return schema.MessageInvalidAdminFlag
		}
	case priceField:
		number, ok := toNumber(value)
		if !ok {
			return schema.NotNumberMessage(f.name)
		}

		if number != math.Trunc(number) {
			return schema.NotIntegerMessage(f.name)
		}

		if number <= 0 {
			return schema.NotPositiveMessage(f.name)
		}
	case quantityField:
		number, ok := toNumber(value)
		if !ok {
			return schema.NotNumberMessage(f.name)
		}

		if number != math.Trunc(number) {
			return schema.NotIntegerMessage(f.name)
		}

		if number < 0 {
			return schema.NegativeMessage(f.name)
		}
	}

	return ""
}

func checkString(name string, value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return schema.NotStringMessage(name)
	}

	if s == "" {
		return schema.BlankMessage(name)
	}

	return ""
}

// isEmail accepts a bare address with a dotted domain.
func isEmail(s string) bool {
	address, err := mail.ParseAddress(s)
	if err != nil || address.Address != s || address.Name != "" {
		return false
	}

	at := strings.LastIndex(s, "@")

	return at > 0 && strings.Contains(s[at+1:], ".") && !strings.HasSuffix(s, ".")
}

// toNumber accepts JSON numbers and strings that hold one, as the remote API
// converts the latter.
func toNumber(value interface{}) (float64, bool) {
	var text string

	switch t := value.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0, false
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(number, 0) || math.IsNaN(number) {
		return 0, false
	}

	return number, true
}

func decodeUser(body map[string]interface{}) User {
	return User{
		Name:          stringValue(body["nome"]),
		Email:         stringValue(body["email"]),
		Password:      stringValue(body["password"]),
		Administrator: stringValue(body["administrador"]),
	}
}

func decodeProduct(body map[string]interface{}) Product {
	price, _ := toNumber(body["preco"])
	quantity, _ := toNumber(body["quantidade"])

	return Product{
		Name:        stringValue(body["nome"]),
		Price:       int(price),
		Description: stringValue(body["descricao"]),
		Quantity:    int(quantity),
	}
}

func stringValue(value interface{}) string {
	s, _ := value.(string)

	return s
}
