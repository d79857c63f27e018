// Copyright 2025 The FrappeAPI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors provides the dispatch error taxonomy and HTTP error
// formatting.
//
// The sentinels (ErrMethodNotFound, ErrMethodNotAllowed, ErrNotPermitted,
// ErrInvalidArgument) classify failures produced by the dispatch layer
// itself. Handler errors are never classified or replaced: they travel
// through dispatch unchanged and only meet this package at the HTTP
// boundary, where a Formatter turns them into a response body.
//
// Four formatters are provided:
//   - Legacy: the dotted-path body shape {"exception", "exc_type"} (default)
//   - Simple: plain JSON {"error", "details", "code"}
//   - Problem: RFC 9457 Problem Details (application/problem+json)
//   - JSONAPI: JSON:API error objects (application/vnd.api+json)
//
// # Quick Start
//
//	formatter := errors.NewLegacy()
//	response := formatter.Format(r, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	json.NewEncoder(w).Encode(response.Body)
//
// # Error Interfaces
//
// Handler errors can implement optional interfaces to shape their
// serialization without the dispatch layer touching them:
//
//   - ErrorType: declare the HTTP status code
//   - ErrorDetails: attach structured details (server messages)
//   - ErrorCode: override the machine-readable exception label
//
// Example:
//
//	type QuotaError struct{ Limit int }
//
//	func (e QuotaError) Error() string   { return "quota exceeded" }
//	func (e QuotaError) HTTPStatus() int { return http.StatusTooManyRequests }
//	func (e QuotaError) Code() string    { return "QuotaError" }
//
// Errors without any interface fall back to the sentinel mapping in
// StatusOf and ExcTypeOf, and finally to 500 ServerError.
package errors
