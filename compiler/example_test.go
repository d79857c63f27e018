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

package compiler_test

import (
	"fmt"

	"github.com/i404788/frappeapi/compiler"
)

func ExampleCompile() {
	tmpl, err := compiler.Compile("/items/{code:int}")
	if err != nil {
		fmt.Println("compile failed:", err)
		return
	}

	params, ok := tmpl.Match("/items/42")
	fmt.Println(ok, params["code"])

	_, ok = tmpl.Match("/items/abc")
	fmt.Println(ok)

	// Output:
	// true 42
	// false
}

func ExampleTemplate_Match_remainder() {
	tmpl := compiler.MustCompile("/files/{filepath:path}")

	params, ok := tmpl.Match("/files/docs/report.txt")
	fmt.Println(ok, params["filepath"])

	// Output:
	// true docs/report.txt
}
