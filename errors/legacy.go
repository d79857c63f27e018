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

// Legacy formats errors in the body shape the dotted-path convention has
// always produced, so existing clients keep parsing failures the same way
// regardless of which dispatch path served the request.
// Format: {"exception": "message", "exc_type": "PermissionError"}
//
// Example:
//
//	formatter := errors.NewLegacy()
//	response := formatter.Format(req, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	json.NewEncoder(w).Encode(response.Body)
type Legacy struct {
	// StatusResolver determines HTTP status from error.
	// If nil, StatusOf is used.
	StatusResolver func(err error) int
}

// Format converts an error into a legacy JSON response. The exception
// type label comes from the ErrorCode interface when implemented,
// otherwise from the sentinel mapping in ExcTypeOf.
func (f *Legacy) Format(req *http.Request, err error) Response {
	status := f.determineStatus(err)

	body := map[string]any{
		"exception": err.Error(),
		"exc_type":  ExcTypeOf(err),
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		body["_server_messages"] = detailed.Details()
	}

	return Response{
		Status:      status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

func (f *Legacy) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}
	return StatusOf(err)
}
