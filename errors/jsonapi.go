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
	"strconv"
)

// JSONAPI formats errors per the JSON:API specification.
// It produces responses with Content-Type "application/vnd.api+json".
// See: https://jsonapi.org/format/#errors
//
// Example:
//
//	formatter := errors.NewJSONAPI()
//	response := formatter.Format(req, err)
type JSONAPI struct {
	// StatusResolver determines HTTP status from error.
	// If nil, StatusOf is used.
	StatusResolver func(err error) int
}

// jsonAPIError represents a single error in JSON:API format.
type jsonAPIError struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// jsonAPIErrorResponse wraps errors in JSON:API format.
type jsonAPIErrorResponse struct {
	Errors []jsonAPIError `json:"errors"`
}

// Format converts an error into a JSON:API error response.
// If the error implements ErrorDetails, each detail becomes its own
// error object. The error code always comes from ExcTypeOf so handler
// errors keep their exception class name.
func (f *JSONAPI) Format(req *http.Request, err error) Response {
	status := f.determineStatus(err)

	base := jsonAPIError{
		Status: strconv.Itoa(status),
		Code:   ExcTypeOf(err),
		Title:  http.StatusText(status),
		Detail: err.Error(),
	}

	var apiErrors []jsonAPIError

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		switch details := detailed.Details().(type) {
		case []string:
			for _, msg := range details {
				e := base
				e.ID = generateErrorID()
				e.Meta = map[string]any{"server_message": msg}
				apiErrors = append(apiErrors, e)
			}
		case []any:
			for _, msg := range details {
				e := base
				e.ID = generateErrorID()
				e.Meta = map[string]any{"server_message": msg}
				apiErrors = append(apiErrors, e)
			}
		default:
			e := base
			e.ID = generateErrorID()
			e.Meta = map[string]any{"details": details}
			apiErrors = append(apiErrors, e)
		}
	}

	if len(apiErrors) == 0 {
		base.ID = generateErrorID()
		apiErrors = []jsonAPIError{base}
	}

	return Response{
		Status:      status,
		ContentType: "application/vnd.api+json; charset=utf-8",
		Body:        jsonAPIErrorResponse{Errors: apiErrors},
	}
}

func (f *JSONAPI) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}
	return StatusOf(err)
}
