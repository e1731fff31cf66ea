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

// Package api provides the client, data factories and fixtures used by the
// ServeRest API test suites.
//
// # Hand Written Client
//
// The package deliberately talks HTTP directly rather than through a
// generated client. Every request and response is therefore visible to the
// tests, including the ones a generated client would refuse to send, such as
// payloads with missing fields or malformed ids.
//
// The client adds a few things that make failures against a shared, public
// API easier to diagnose:
//   - W3C trace context on every request, reported back in errors
//   - optional logging of requests and bodies through logr
//   - optional validation of every response against an OpenAPI contract
//   - client side rate limiting
//
// # Test Data
//
// The remote API is shared and never reset, so every spec creates its own
// users and products with randomized data and removes them again with
// DeferCleanup. Nothing relies on records the test did not create itself.
//
// When API_BASE_URL is empty the suites run against an in-process fake, see
// the fake package.
package api
