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

package route

import "errors"

var (
	// ErrNoMethods indicates a route was declared without any HTTP
	// method.
	ErrNoMethods = errors.New("route requires at least one method")

	// ErrNilHandler indicates a route was declared without a handler.
	ErrNilHandler = errors.New("route requires a handler")
)
