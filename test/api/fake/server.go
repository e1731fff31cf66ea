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

// Package fake is an in-memory stand-in for the ServeRest API, used to run
// the suites without network access. It reproduces the status codes and
// messages of the remote API for the users, products and login routes.
package fake

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

// Server is an http.Handler serving the fake API.
type Server struct {
	router      chi.Router
	store       *Store
	secret      []byte
	tokenExpiry time.Duration
	now         func() time.Time
	logger      logr.Logger
	seed        []byte
}

type Option func(*Server)

// WithLogger logs every request at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces the time source used to issue and check tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func WithTokenExpiry(expiry time.Duration) Option {
	return func(s *Server) {
		s.tokenExpiry = expiry
	}
}

// WithSeed replaces the embedded dataset with a YAML document.
func WithSeed(seed []byte) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

func New(options ...Option) (*Server, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}

	s := &Server{
		secret:      secret,
		tokenExpiry: DefaultTokenExpiry,
		now:         time.Now,
		logger:      logr.Discard(),
		seed:        defaultSeed,
	}

	for _, option := range options {
		option(s)
	}

	seed, err := ParseSeed(s.seed)
	if err != nil {
		return nil, err
	}

	s.store = NewStore(seed)
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(s.requestLog)

	r.Post("/login", s.login)

	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(validID)

			r.Get("/", s.getUser)
			r.Put("/", s.replaceUser)
			r.Delete("/", s.deleteUser)
		})
	})

	r.Route("/produtos", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.With(s.requireAdmin).Post("/", s.createProduct)

		r.Route("/{id}", func(r chi.Router) {
			r.With(validID).Get("/", s.getProduct)
			r.With(s.requireAdmin, validID).Put("/", s.replaceProduct)
			r.With(s.requireAdmin, validID).Delete("/", s.deleteProduct)
		})
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store exposes the state, e.g. to assert on it directly.
func (s *Server) Store() *Store {
	return s.store
}

// Reset restores the initial dataset. Issued tokens stay valid for users
// that still exist afterwards.
func (s *Server) Reset() {
	s.store.Reset()
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "traceparent", r.Header.Get("Traceparent"))
	})
}

// requireAdmin rejects requests without a valid token with 401, and tokens
// of non administrators with 403.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, schema.MessageInvalidToken)
			return
		}

		if user.Administrator != "true" {
			writeMessage(w, http.StatusForbidden, schema.MessageAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func validID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id schema.ID

		if err := id.UnmarshalText([]byte(chi.URLParam(r, "id"))); err != nil {
			writeJSON(w, http.StatusBadRequest, fieldErrors{"id": schema.MessageInvalidID})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeCreated(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusCreated, map[string]string{"message": schema.MessageCreated, "_id": id})
}

// readBody decodes and validates a request body, writing the 400 itself when
// either fails.
func readBody(w http.ResponseWriter, r *http.Request, fields []field) (map[string]interface{}, bool) {
	body, err := decodeBody(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, schema.MessageMalformedBody)
		return nil, false
	}

	if errs := validate(body, fields); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return nil, false
	}

	return body, true
}

// readFilter checks that query contains only allowed fields.
func readFilter(w http.ResponseWriter, r *http.Request, allowed ...string) (map[string]string, bool) {
	known := map[string]bool{"_id": true}
	for _, name := range allowed {
		known[name] = true
	}

	filter := map[string]string{}
	errs := fieldErrors{}

	for key, values := range r.URL.Query() {
		if !known[key] {
			errs[key] = schema.NotAllowedMessage(key)
			continue
		}

		filter[key] = values[0]
	}

	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return nil, false
	}

	return filter, true
}

// matches reports whether every filter key is absent or equal to its value in fields.
func matches(filter, fields map[string]string) bool {
	for key, want := range filter {
		if fields[key] != want {
			return false
		}
	}

	return true
}
