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
	"fmt"
	"strings"
)

// Template is a compiled path template. It pre-computes the template
// structure during compilation, including static segment positions,
// parameter names, and their converters, so that matching is a single
// pass over the request path with no allocation for typical templates.
//
// A Template is immutable after compilation and safe for concurrent use.
type Template struct {
	pattern string // Original template (/items/{code})

	// Template structure (pre-computed during compilation)
	segmentCount   int32    // Total number of segments
	staticSegments []string // Static segments that must match exactly
	staticPos      []int32  // Positions of static segments
	params         []templateParam

	// Flags
	trailingSlash bool // Template ends with '/'; matched paths must too
	remainder     bool // Final parameter consumes the rest of the path
}

// templateParam is one parameter slot with its position and converter.
type templateParam struct {
	name string
	pos  int32
	conv Converter
}

// Compile parses a path template into a Template.
//
// A template is a '/'-separated sequence of segments. Each segment is
// either literal text or a single parameter of the form {name} or
// {name:converter}. The built-in converters are str (default), int,
// float, uuid, and path; path consumes the remainder of the request
// path and is only allowed in the final segment.
//
// Compile fails when the template is malformed: empty template, missing
// leading slash, empty segment, unbalanced braces, literal text mixed
// with a parameter inside one segment, empty or duplicate parameter
// names, or an unknown converter. All compilation errors satisfy
// errors.Is(err, ErrInvalidTemplate).
//
// Example:
//
//	t, err := compiler.Compile("/items/{code}")
//	t, err := compiler.Compile("/orders/{id:int}")
//	t, err := compiler.Compile("/files/{filepath:path}")
func Compile(template string) (*Template, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		return nil, ErrEmptyTemplate
	}
	if template[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrNoLeadingSlash, template)
	}

	t := &Template{pattern: template}

	// Root template matches exactly "/".
	if template == "/" {
		return t, nil
	}

	t.trailingSlash = strings.HasSuffix(template, "/")

	segments := strings.Split(strings.Trim(template, "/"), "/")
	t.segmentCount = int32(len(segments))

	seen := make(map[string]struct{}, len(segments))
	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w in %q", ErrEmptySegment, template)
		}
		if !strings.ContainsAny(seg, "{}") {
			t.staticSegments = append(t.staticSegments, seg)
			t.staticPos = append(t.staticPos, int32(i))
			continue
		}

		name, convName, err := parseParamSegment(seg)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, template)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, template)
		}
		seen[name] = struct{}{}

		conv, ok := Lookup(convName)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownConverter, convName, template)
		}
		if convName == "path" {
			// The remainder swallows everything after the preceding
			// slash, so nothing may follow it, not even a trailing '/'.
			if i != len(segments)-1 || t.trailingSlash {
				return nil, fmt.Errorf("%w: %q", ErrRemainderNotLast, template)
			}
			t.remainder = true
		}

		t.params = append(t.params, templateParam{
			name: name,
			pos:  int32(i),
			conv: conv,
		})
	}

	return t, nil
}

// MustCompile is like Compile but panics on error.
// Intended for template literals known to be valid.
func MustCompile(template string) *Template {
	t, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return t
}

// parseParamSegment validates a segment containing braces and splits it
// into parameter name and converter name. The segment must be exactly
// one {name} or {name:converter} group with nothing around it.
func parseParamSegment(seg string) (name, convName string, err error) {
	depth := 0
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return "", "", ErrUnbalancedBraces
			}
		}
	}
	if depth != 0 {
		return "", "", ErrUnbalancedBraces
	}
	if seg[0] != '{' || seg[len(seg)-1] != '}' || strings.Count(seg, "{") != 1 {
		return "", "", ErrMixedSegment
	}

	inner := seg[1 : len(seg)-1]
	convName = "str"
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		name, convName = inner[:idx], inner[idx+1:]
	} else {
		name = inner
	}
	if name == "" {
		return "", "", ErrEmptyParamName
	}
	return name, convName, nil
}

// Pattern returns the original template string (e.g. "/items/{code}").
func (t *Template) Pattern() string {
	return t.pattern
}

// Static reports whether the template has no parameters.
func (t *Template) Static() bool {
	return len(t.params) == 0
}

// ParamNames returns the parameter names in template order.
// Returns nil for static templates.
func (t *Template) ParamNames() []string {
	if len(t.params) == 0 {
		return nil
	}
	names := make([]string, len(t.params))
	for i, p := range t.params {
		names[i] = p.name
	}
	return names
}

// Converters returns a map of parameter name to converter name.
// Returns nil for static templates.
func (t *Template) Converters() map[string]string {
	if len(t.params) == 0 {
		return nil
	}
	out := make(map[string]string, len(t.params))
	for _, p := range t.params {
		out[p.name] = p.conv.Name()
	}
	return out
}
