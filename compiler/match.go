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

import "strings"

// Params holds the extracted parameters of a successful match, keyed by
// parameter name. Values carry the converter's Go type: string for str
// and path, int64 for int, float64 for float, uuid.UUID for uuid.
type Params map[string]any

// Match attempts to match path against the template. Matching is
// anchored on both ends: the template matches the full path, never a
// prefix. "/a" and "/a/" are distinct paths and never match the same
// template (a remainder parameter captures the trailing slash instead).
//
// Literal segments require exact equality. Parameter segments consume
// one path segment and apply their converter; a failed conversion
// rejects the match. Match never returns an error: any failure is
// reported as ok == false.
//
// On success the returned Params holds the converted values, nil when
// the template has no parameters.
//
// Implementation: single-pass validation and extraction
//  1. Rejection by length and slash count
//  2. Parse path into stack-allocated segment array
//  3. Validate static segments by direct position check
//  4. Convert parameters by position
func (t *Template) Match(path string) (Params, bool) {
	// Root template matches only the root path.
	if t.segmentCount == 0 {
		return nil, path == "/" || path == ""
	}

	if len(path) == 0 || path[0] != '/' {
		return nil, false
	}

	if t.remainder {
		return t.matchRemainder(path)
	}

	pathLen := len(path)

	// Length check for early exit: leading slash, one byte per segment,
	// a separator between segments.
	minLen := 2 * int(t.segmentCount)
	if t.trailingSlash {
		minLen++
	}
	if pathLen < minLen {
		return nil, false
	}

	// Exact slash count validation. The count distinguishes "/a" from
	// "/a/" even though both parse into the same segments.
	expectedSlashes := t.segmentCount
	if t.trailingSlash {
		expectedSlashes++
	}
	slashCount := int32(0)
	for i := 0; i < pathLen; i++ {
		if path[i] == '/' {
			slashCount++
			if slashCount > expectedSlashes {
				return nil, false
			}
		}
	}
	if slashCount != expectedSlashes {
		return nil, false
	}

	// Stack-allocated segment buffer; append spills to the heap for the
	// rare path deeper than 16 segments.
	var buf [16]string
	segments := buf[:0]

	start := 1
	for start < pathLen {
		end := start
		for end < pathLen && path[end] != '/' {
			end++
		}
		segments = append(segments, path[start:end])
		start = end + 1
	}

	if int32(len(segments)) != t.segmentCount {
		return nil, false
	}

	// Validate static segments with early exit.
	for i, pos := range t.staticPos {
		if segments[pos] != t.staticSegments[i] {
			return nil, false
		}
	}

	if len(t.params) == 0 {
		return nil, true
	}

	// Convert parameters in template order.
	params := make(Params, len(t.params))
	for _, p := range t.params {
		v, err := p.conv.Convert(segments[p.pos])
		if err != nil {
			return nil, false
		}
		params[p.name] = v
	}
	return params, true
}

// matchRemainder matches templates whose final parameter is a path
// converter. The segments before it behave exactly as in Match; the
// remainder captures everything after the last separator, slashes and
// all, possibly empty.
func (t *Template) matchRemainder(path string) (Params, bool) {
	prefixCount := int(t.segmentCount) - 1

	var buf [16]string
	segments := buf[:0]

	start := 1
	for j := 0; j < prefixCount; j++ {
		idx := strings.IndexByte(path[start:], '/')
		if idx < 0 {
			return nil, false
		}
		segments = append(segments, path[start:start+idx])
		start += idx + 1
	}
	rest := path[start:]

	for i, pos := range t.staticPos {
		if segments[pos] != t.staticSegments[i] {
			return nil, false
		}
	}

	params := make(Params, len(t.params))
	for _, p := range t.params[:len(t.params)-1] {
		v, err := p.conv.Convert(segments[p.pos])
		if err != nil {
			return nil, false
		}
		params[p.name] = v
	}

	last := t.params[len(t.params)-1]
	v, err := last.conv.Convert(rest)
	if err != nil {
		return nil, false
	}
	params[last.name] = v
	return params, true
}
