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
	"errors"
	"net/http"
)

var (
	// ErrMethodNotFound indicates that no dotted-path method is registered
	// under the requested name. Serialized with status 404.
	ErrMethodNotFound = errors.New("method not found")

	// ErrMethodNotAllowed indicates that the method exists but does not
	// accept the request's HTTP verb. Serialized with status 405.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrNotPermitted indicates that the current session may not call the
	// method, for example a guest calling a non-guest method.
	// Serialized with status 403.
	ErrNotPermitted = errors.New("not permitted")

	// ErrInvalidArgument indicates that a request parameter failed
	// conversion or validation. Serialized with status 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StatusOf resolves the HTTP status code for an error.
//
// Resolution order:
//  1. The ErrorType interface, when the error declares its own status
//  2. The package sentinels (ErrMethodNotFound, ErrNotPermitted, ...)
//  3. 500 Internal Server Error
func StatusOf(err error) int {
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	switch {
	case errors.Is(err, ErrMethodNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ExcTypeOf resolves the exception type label used by the legacy error
// body. Errors implementing ErrorCode take their own code; the package
// sentinels map to the labels legacy clients already parse.
func ExcTypeOf(err error) string {
	var coded ErrorCode
	if errors.As(err, &coded) {
		return coded.Code()
	}

	switch {
	case errors.Is(err, ErrMethodNotFound):
		return "NotFound"
	case errors.Is(err, ErrMethodNotAllowed):
		return "MethodNotAllowed"
	case errors.Is(err, ErrNotPermitted):
		return "PermissionError"
	case errors.Is(err, ErrInvalidArgument):
		return "ValidationError"
	}

	return "ServerError"
}
