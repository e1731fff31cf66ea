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
	"encoding/json"
	"fmt"
)

// AdminFlag mirrors the remote contract where the administrator flag is the
// literal string "true" or "false", never a JSON boolean.
type AdminFlag string

const (
	AdminTrue  AdminFlag = "true"
	AdminFalse AdminFlag = "false"
)

// AdminFlagFor converts a boolean into the wire representation.
func AdminFlagFor(admin bool) AdminFlag {
	if admin {
		return AdminTrue
	}

	return AdminFalse
}

// UserPayload is the complete user record sent on create and update.
type UserPayload struct {
	Name          string    `json:"nome"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	Administrator AdminFlag `json:"administrador"`
}

// ProductPayload is the complete product record sent on create and update.
type ProductPayload struct {
	Name        string `json:"nome"`
	Price       int    `json:"preco"`
	Description string `json:"descricao"`
	Quantity    int    `json:"quantidade"`
}

// LoginPayload is the body of POST /login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRecord is a user as returned by the remote API.
type UserRecord struct {
	UserPayload

	ID string `json:"_id"`
}

// ProductRecord is a product as returned by the remote API.
type ProductRecord struct {
	ProductPayload

	ID string `json:"_id"`
}

type UserList struct {
	Quantity int          `json:"quantidade"`
	Users    []UserRecord `json:"usuarios"`
}

type ProductList struct {
	Quantity int             `json:"quantidade"`
	Products []ProductRecord `json:"produtos"`
}

// CreatedResponse is returned by successful creates, including create-on-miss updates.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"_id"`
}

type LoginResponse struct {
	Message       string `json:"message"`
	Authorization string `json:"authorization"`
}

// RawPayload is an untyped payload used to send what the typed payloads
// cannot express: missing fields and values of the wrong type.
type RawPayload map[string]interface{}

// ToRawPayload converts any JSON-marshalable payload into a RawPayload.
func ToRawPayload(payload interface{}) (RawPayload, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	var raw RawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling payload: %w", err)
	}

	return raw, nil
}

// Without removes the given keys.
func (p RawPayload) Without(keys ...string) RawPayload {
	for _, key := range keys {
		delete(p, key)
	}

	return p
}

// Set replaces a key with an arbitrary value.
func (p RawPayload) Set(key string, value interface{}) RawPayload {
	p[key] = value

	return p
}
