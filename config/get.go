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

package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Get returns the value at a dot-separated path, or nil when absent.
// Lookups are case-insensitive: keys are stored lowercase.
func (c *Config) Get(key string) any {
	if c == nil || key == "" {
		return nil
	}
	return c.lookup(strings.ToLower(key))
}

// lookup walks the snapshot. A literal key match wins over dot
// traversal, so a flat key containing dots stays addressable.
func (c *Config) lookup(path string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil {
		return nil
	}
	current := *c.values

	if v, ok := current[path]; ok {
		return v
	}

	segments := strings.Split(path, ".")
	for i, segment := range segments {
		v, ok := current[segment]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return v
		}
		nested, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		current = nested
	}

	return nil
}

// String returns the value as a string, or "" when absent or
// unconvertible.
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// Int returns the value as an int, or 0.
func (c *Config) Int(key string) int {
	return cast.ToInt(c.Get(key))
}

// Int64 returns the value as an int64, or 0.
func (c *Config) Int64(key string) int64 {
	return cast.ToInt64(c.Get(key))
}

// Float64 returns the value as a float64, or 0.
func (c *Config) Float64(key string) float64 {
	return cast.ToFloat64(c.Get(key))
}

// Bool returns the value as a bool, or false.
func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// Duration returns the value as a time.Duration, or 0.
func (c *Config) Duration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

// StringSlice returns the value as a []string, or an empty slice.
func (c *Config) StringSlice(key string) []string {
	return cast.ToStringSlice(c.Get(key))
}

// StringMap returns the value as a map[string]any, or an empty map.
func (c *Config) StringMap(key string) map[string]any {
	return cast.ToStringMap(c.Get(key))
}

// StringOr returns the value as a string, or defaultVal when the key
// is absent. An empty string stored under the key is returned as-is.
func (c *Config) StringOr(key, defaultVal string) string {
	v := c.Get(key)
	if v == nil {
		return defaultVal
	}
	return cast.ToString(v)
}

// IntOr returns the value as an int, or defaultVal when absent.
func (c *Config) IntOr(key string, defaultVal int) int {
	v := c.Get(key)
	if v == nil {
		return defaultVal
	}
	return cast.ToInt(v)
}

// BoolOr returns the value as a bool, or defaultVal when absent.
func (c *Config) BoolOr(key string, defaultVal bool) bool {
	v := c.Get(key)
	if v == nil {
		return defaultVal
	}
	return cast.ToBool(v)
}

// DurationOr returns the value as a duration, or defaultVal when
// absent.
func (c *Config) DurationOr(key string, defaultVal time.Duration) time.Duration {
	v := c.Get(key)
	if v == nil {
		return defaultVal
	}
	return cast.ToDuration(v)
}
