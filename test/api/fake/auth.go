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
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// DefaultTokenExpiry matches the lifetime of tokens issued by the remote API.
const DefaultTokenExpiry = 600 * time.Second

// tokenClaims carries the credentials a token was issued for. A token is
// only honoured while a user with these exact credentials exists.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) issueToken(user User) (string, error) {
	now := s.now()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
		Email:    user.Email,
		Password: user.Password,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return "Bearer " + signed, nil
}

// authenticate resolves the Authorization header to a user. The "Bearer "
// prefix is optional.
func (s *Server) authenticate(header string) (User, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer"))
	if raw == "" {
		return User{}, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return User{}, ErrInvalidToken
	}

	user, ok := s.store.FindUserByCredentials(claims.Email, claims.Password)
	if !ok {
		return User{}, ErrInvalidToken
	}

	return user, nil
}
