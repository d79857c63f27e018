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

package errors

import (
	"net/http"
)

// Formatter defines how dispatch errors are serialized in HTTP responses.
// The host's outer serialization layer applies one formatter uniformly to
// errors from both template-routed and dotted-path handlers.
//
// Example:
//
//	formatter := errors.NewLegacy()
//	response := formatter.Format(req, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	json.NewEncoder(w).Encode(response.Body)
type Formatter interface {
	// Format converts an error into HTTP response components.
	//
	// Parameters:
	//   - req: HTTP request context (used for instance URI in Problem)
	//   - err: Error to format
	//
	// Returns a Response containing status code, content type, and body.
	Format(req *http.Request, err error) Response
}

// Response represents a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body (marshaled to JSON by the caller).
	Body any

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// ErrorType allows errors to declare their own HTTP status code.
//
// Example:
//
//	type QuotaError struct{ Message string }
//
//	func (e QuotaError) Error() string   { return e.Message }
//	func (e QuotaError) HTTPStatus() int { return http.StatusTooManyRequests }
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrorDetails allows errors to provide additional structured information,
// such as field-level validation failures.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// ErrorCode allows errors to provide a machine-readable code. The legacy
// formatter uses it as the exception type label.
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// NewLegacy creates a new Legacy formatter. This is the default formatter:
// it reproduces the error body shape legacy dotted-path clients parse.
func NewLegacy() *Legacy {
	return &Legacy{}
}

// NewSimple creates a new Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// NewProblem creates a new Problem formatter producing RFC 9457 problem
// details. The baseURL parameter is prepended to problem type slugs.
func NewProblem(baseURL string) *Problem {
	return &Problem{BaseURL: baseURL}
}

// NewJSONAPI creates a new JSONAPI formatter.
func NewJSONAPI() *JSONAPI {
	return &JSONAPI{}
}

// WithStatus wraps an error with an explicit HTTP status code.
// The wrapped error implements the ErrorType interface.
// If err is nil, the status text for the given code is the message.
//
// Example:
//
//	return errors.WithStatus(err, http.StatusConflict)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
