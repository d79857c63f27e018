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

// Package compiler turns path template strings into matchable patterns
// with typed parameter slots.
//
// Templates use brace placeholders with optional converters:
//
//	/items/{code}              str (default), one segment
//	/orders/{id:int}           decimal digits, yields int64
//	/prices/{amount:float}     decimal number, yields float64
//	/entities/{ref:uuid}       canonical UUID, yields uuid.UUID
//	/files/{filepath:path}     remainder of the path, slashes included
//
// # Compilation
//
// Compile analyzes the template once, at registration time:
//
//  1. Splits the template into segments
//  2. Validates parameter syntax and converter names
//  3. Records static segment positions for direct comparison
//  4. Records parameter positions and converters for extraction
//
// Malformed templates fail compilation immediately so that
// misconfigured routes are caught before any traffic is served. All
// compilation errors satisfy errors.Is(err, ErrInvalidTemplate).
//
// # Matching
//
// Match compares a request path segment-by-segment against the
// compiled structure. Literal segments require exact equality;
// parameter segments apply their converter and reject the match on
// conversion failure. Matching is anchored on both ends and never
// backtracks: a template is unambiguous by construction because each
// segment holds at most one parameter.
//
//	t := compiler.MustCompile("/items/{code:int}")
//	params, ok := t.Match("/items/42")
//	// ok == true, params["code"] == int64(42)
//	_, ok = t.Match("/items/abc")
//	// ok == false, no error
package compiler
