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

//go:build !integration

package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"

	"github.com/i404788/frappeapi/errors"
)

func ExampleLegacy_Format() {
	formatter := errors.NewLegacy()
	req := httptest.NewRequest("GET", "/api/method/frappe.client.get", nil)

	response := formatter.Format(req, errors.ErrNotPermitted)

	body, _ := json.Marshal(response.Body)
	fmt.Println(response.Status)
	fmt.Println(string(body))
	// Output:
	// 403
	// {"exc_type":"PermissionError","exception":"not permitted"}
}

func ExampleWithStatus() {
	err := errors.WithStatus(fmt.Errorf("document is locked"), 423)

	fmt.Println(errors.StatusOf(err))
	fmt.Println(err)
	// Output:
	// 423
	// document is locked
}
