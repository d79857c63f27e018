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
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// Converter converts a raw path segment into its typed Go value.
// A conversion error rejects the candidate match; it is never surfaced
// to callers of Match.
type Converter interface {
	// Name returns the converter name as written in templates, e.g. "int".
	Name() string

	// Convert parses raw and returns the typed value.
	Convert(raw string) (any, error)
}

// Lookup returns the converter registered under name.
// The built-in converters are "str", "int", "float", "uuid", and "path".
func Lookup(name string) (Converter, bool) {
	c, ok := converters[name]
	return c, ok
}

var converters = map[string]Converter{
	"str":   stringConverter{},
	"int":   intConverter{},
	"float": floatConverter{},
	"uuid":  uuidConverter{},
	"path":  pathConverter{},
}

var errEmptyValue = errors.New("empty value")

var (
	floatRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// stringConverter accepts any non-empty single segment and yields string.
type stringConverter struct{}

func (stringConverter) Name() string { return "str" }

func (stringConverter) Convert(raw string) (any, error) {
	if raw == "" {
		return nil, errEmptyValue
	}
	return raw, nil
}

// intConverter accepts decimal digits only (no sign) and yields int64.
type intConverter struct{}

func (intConverter) Name() string { return "int" }

func (intConverter) Convert(raw string) (any, error) {
	if raw == "" {
		return nil, errEmptyValue
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return nil, strconv.ErrSyntax
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// floatConverter accepts a non-negative decimal number and yields float64.
type floatConverter struct{}

func (floatConverter) Name() string { return "float" }

func (floatConverter) Convert(raw string) (any, error) {
	if !floatRe.MatchString(raw) {
		return nil, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// uuidConverter accepts the canonical 8-4-4-4-12 hex form and yields uuid.UUID.
type uuidConverter struct{}

func (uuidConverter) Name() string { return "uuid" }

func (uuidConverter) Convert(raw string) (any, error) {
	if !uuidRe.MatchString(raw) {
		return nil, strconv.ErrSyntax
	}
	return uuid.Parse(raw)
}

// pathConverter consumes the remainder of the request path, slashes
// included, and yields string. The remainder may be empty.
type pathConverter struct{}

func (pathConverter) Name() string { return "path" }

func (pathConverter) Convert(raw string) (any, error) {
	return raw, nil
}
