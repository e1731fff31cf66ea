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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

//go:generate mockgen -destination=mock/interfaces.go -package=mock . HTTPDoer,ResponseValidator

// HTTPDoer is the transport seam of the client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseValidator checks a response against the API contract.
type ResponseValidator interface {
	ValidateResponse(req *http.Request, status int, header http.Header, body []byte) error
}

type APIClient struct {
	baseURL   string
	client    HTTPDoer
	config    *TestConfig
	endpoints *Endpoints
	logger    logr.Logger
	limiter   *rate.Limiter
	validator ResponseValidator
	generator *Generator
}

// ClientOption customizes an APIClient.
type ClientOption func(*APIClient)

// WithHTTPDoer replaces the HTTP transport.
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(c *APIClient) {
		c.client = doer
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger logr.Logger) ClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// WithResponseValidator replaces the contract validator. Nil disables validation.
func WithResponseValidator(validator ResponseValidator) ClientOption {
	return func(c *APIClient) {
		c.validator = validator
	}
}

// WithGenerator replaces the payload generator used by the create operations.
func WithGenerator(generator *Generator) ClientOption {
	return func(c *APIClient) {
		c.generator = generator
	}
}

// NewAPIClientWithConfig creates a client for config.BaseURL. A non-zero
// config.Seed also becomes the process-wide default generator.
func NewAPIClientWithConfig(config *TestConfig, options ...ClientOption) (*APIClient, error) {
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
		limiter:   rate.NewLimiter(limit, 1),
		generator: NewGenerator(config.Seed),
	}

	if config.ValidateResponses {
		validator, err := schema.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("loading response contract: %w", err)
		}

		c.validator = validator
	}

	for _, option := range options {
		option(c)
	}

	// A seeded run must be reproducible through the package-level
	// Generate functions too.
	if config.Seed != 0 {
		SetDefaultGenerator(c.generator)
	}

	return c, nil
}

// Endpoints returns the endpoint paths the client uses.
func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// Generator returns the payload generator used by the create operations.
func (c *APIClient) Generator() *Generator {
	return c.generator
}

// requestOptions collects per-request settings.
type requestOptions struct {
	headers http.Header
	query   url.Values
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// WithHeader sets a header, overriding any default of the same name.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithHeaders sets several headers at once.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for key, value := range headers {
			o.headers.Set(key, value)
		}
	}
}

// WithAuthorization sets the Authorization header to the raw token as
// returned by the login route. An empty token still sends the header.
func WithAuthorization(token string) RequestOption {
	return WithHeader("Authorization", token)
}

// WithQuery adds query parameters.
func WithQuery(query url.Values) RequestOption {
	return func(o *requestOptions) {
		for key, values := range query {
			for _, value := range values {
				o.query.Add(key, value)
			}
		}
	}
}

func (c *APIClient) Get(ctx context.Context, path string, options ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil, options...)
}

func (c *APIClient) Post(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, path, body, options...)
}

func (c *APIClient) Put(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, path, body, options...)
}

func (c *APIClient) Delete(ctx context.Context, path string, options ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, path, nil, options...)
}

// marshalBody encodes body as JSON. A []byte body is sent verbatim so that
// malformed documents can be exercised.
func marshalBody(body interface{}) ([]byte, error) {
	if raw, ok := body.([]byte); ok {
		return raw, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return data, nil
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.logger.Error(err, context, "method", method, "path", path, "duration", duration, "traceparent", traceParent, "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace per request lets a failure be found in the server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}, options ...RequestOption) (*Response, error) {
	opts := &requestOptions{
		headers: http.Header{},
		query:   url.Values{},
	}

	for _, option := range options {
		option(opts)
	}

	fullURL := c.baseURL + path
	if len(opts.query) > 0 {
		fullURL += "?" + opts.query.Encode()
	}

	var reader io.Reader

	if body != nil {
		data, err := marshalBody(body)
		if err != nil {
			return nil, err
		}

		if c.config.DebugLogging {
			c.logger.Info("request body", "method", method, "path", path, "body", string(data))
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Caller supplied headers win over the defaults above.
	for key, values := range opts.headers {
		req.Header[key] = values
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed (trace ID: %s): %w", extractTraceID(traceParent), err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(req, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logError(method, path, duration, traceParent, err, "response violates contract")
			return response, fmt.Errorf("%s %s: response violates contract (status %d, trace ID: %s): %w", method, path, resp.StatusCode, response.TraceID, err)
		}
	}

	return response, nil
}
