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

package dispatch

import "errors"

var (
	// ErrNilHost is returned by Install when the host is nil.
	ErrNilHost = errors.New("host cannot be nil")

	// ErrNilAppSet is returned by Install when the application set is nil.
	ErrNilAppSet = errors.New("application set cannot be nil")

	// ErrPrefixMismatch is returned by Install when the dotted method
	// prefix does not live under the API prefix. The effective path
	// rule depends on that containment.
	ErrPrefixMismatch = errors.New("method prefix must extend the api prefix")
)
