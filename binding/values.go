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

package binding

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/i404788/frappeapi/host"
)

// String returns the named parameter as a string.
func String(c *host.Context, key string) (string, error) {
	raw, ok := c.FormValue(key)
	if !ok {
		return "", missingError(key)
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", conversionError(key, raw, reflect.TypeFor[string](), err)
	}

	return s, nil
}

// Int returns the named parameter as an int64. String digits coerce,
// matching the wire form query and form fields arrive in.
func Int(c *host.Context, key string) (int64, error) {
	raw, ok := c.FormValue(key)
	if !ok {
		return 0, missingError(key)
	}

	n, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, conversionError(key, raw, reflect.TypeFor[int64](), err)
	}

	return n, nil
}

// Float returns the named parameter as a float64.
func Float(c *host.Context, key string) (float64, error) {
	raw, ok := c.FormValue(key)
	if !ok {
		return 0, missingError(key)
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, conversionError(key, raw, reflect.TypeFor[float64](), err)
	}

	return f, nil
}

// Bool returns the named parameter as a bool. Accepts true/false and
// 1/0 in their usual spellings.
func Bool(c *host.Context, key string) (bool, error) {
	raw, ok := c.FormValue(key)
	if !ok {
		return false, missingError(key)
	}

	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, conversionError(key, raw, reflect.TypeFor[bool](), err)
	}

	return b, nil
}

// UUID returns the named parameter as a uuid.UUID. Values extracted by
// the path uuid converter pass through as-is; strings parse in
// canonical form.
func UUID(c *host.Context, key string) (uuid.UUID, error) {
	raw, ok := c.FormValue(key)
	if !ok {
		return uuid.Nil, missingError(key)
	}

	if id, ok := raw.(uuid.UUID); ok {
		return id, nil
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return uuid.Nil, conversionError(key, raw, reflect.TypeFor[uuid.UUID](), err)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, conversionError(key, raw, reflect.TypeFor[uuid.UUID](), fmt.Errorf("%w: %v", ErrInvalidUUIDFormat, err))
	}

	return id, nil
}

// StringOr returns the named parameter as a string, or fallback when
// absent or unconvertible.
func StringOr(c *host.Context, key, fallback string) string {
	v, err := String(c, key)
	if err != nil {
		return fallback
	}
	return v
}

// IntOr returns the named parameter as an int64, or fallback.
func IntOr(c *host.Context, key string, fallback int64) int64 {
	v, err := Int(c, key)
	if err != nil {
		return fallback
	}
	return v
}

// FloatOr returns the named parameter as a float64, or fallback.
func FloatOr(c *host.Context, key string, fallback float64) float64 {
	v, err := Float(c, key)
	if err != nil {
		return fallback
	}
	return v
}

// BoolOr returns the named parameter as a bool, or fallback.
func BoolOr(c *host.Context, key string, fallback bool) bool {
	v, err := Bool(c, key)
	if err != nil {
		return fallback
	}
	return v
}

func missingError(key string) error {
	return &BindError{Field: key, Err: ErrMissingParam}
}

func conversionError(key string, value any, want reflect.Type, err error) error {
	return &BindError{Field: key, Value: value, Type: want, Err: err}
}
