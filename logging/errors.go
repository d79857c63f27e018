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

package logging

import "errors"

// Sentinel errors enable [errors.Is] checks instead of string comparison.
//
// Usage pattern:
//
//	if err := logger.SetLevel(level); err != nil {
//	    if errors.Is(err, logging.ErrCannotChangeLevel) {
//	        // Handle immutable logger case
//	    }
//	}
var (
	// ErrNilLogger indicates a nil custom logger was provided to [WithCustomLogger].
	// This is a programmer error and should be caught during initialization.
	ErrNilLogger = errors.New("custom logger is nil")

	// ErrInvalidHandler indicates an unsupported handler type was specified.
	// Valid types: JSONHandler, TextHandler, ConsoleHandler.
	ErrInvalidHandler = errors.New("invalid handler type")

	// ErrCannotChangeLevel indicates log level cannot be changed dynamically.
	// Returned by [Config.SetLevel] when using a custom logger (level controlled externally).
	ErrCannotChangeLevel = errors.New("cannot change level on custom logger")
)
