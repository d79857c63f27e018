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

package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTemplate is the base error for every template compilation
	// failure. errors.Is(err, ErrInvalidTemplate) reports true for all
	// errors returned by Compile.
	ErrInvalidTemplate = errors.New("invalid path template")

	// ErrEmptyTemplate indicates that the template string is empty.
	ErrEmptyTemplate = fmt.Errorf("%w: template is empty", ErrInvalidTemplate)

	// ErrNoLeadingSlash indicates that the template does not begin with '/'.
	ErrNoLeadingSlash = fmt.Errorf("%w: template must begin with '/'", ErrInvalidTemplate)

	// ErrEmptySegment indicates that the template contains an empty segment ("//").
	ErrEmptySegment = fmt.Errorf("%w: empty segment", ErrInvalidTemplate)

	// ErrUnbalancedBraces indicates that a segment's braces do not pair up.
	ErrUnbalancedBraces = fmt.Errorf("%w: unbalanced braces", ErrInvalidTemplate)

	// ErrMixedSegment indicates that a segment combines literal text with a
	// parameter, or holds more than one parameter. A segment must be either
	// fully literal or exactly one parameter so that matching never has to
	// guess where one value ends and the next begins.
	ErrMixedSegment = fmt.Errorf("%w: segment mixes literal text and parameter", ErrInvalidTemplate)

	// ErrEmptyParamName indicates a parameter with no name, such as "{}" or "{:int}".
	ErrEmptyParamName = fmt.Errorf("%w: empty parameter name", ErrInvalidTemplate)

	// ErrDuplicateParam indicates that a parameter name appears more than
	// once in the same template.
	ErrDuplicateParam = fmt.Errorf("%w: duplicate parameter name", ErrInvalidTemplate)

	// ErrUnknownConverter indicates a converter name with no registered converter.
	ErrUnknownConverter = fmt.Errorf("%w: unknown converter", ErrInvalidTemplate)

	// ErrRemainderNotLast indicates a path converter used anywhere other
	// than the final segment of the template.
	ErrRemainderNotLast = fmt.Errorf("%w: path converter only allowed in the final segment", ErrInvalidTemplate)
)
