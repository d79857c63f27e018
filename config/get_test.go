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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func getterConfig(t *testing.T) *Config {
	t.Helper()

	return TestConfig(t, WithSource(TestSource(map[string]any{
		"listen":       ":8000",
		"workers":      4,
		"ratio":        0.75,
		"banner":       "true",
		"idle_timeout": "90s",
		"verbs":        []any{"GET", "POST"},
		"log":          map[string]any{"level": "debug", "format": "text"},
		"limits":       map[string]any{"depth": map[string]any{"max": 32}},
		"flat.key":     "direct",
	})))
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)

	assert.Equal(t, ":8000", cfg.String("listen"))
	assert.Equal(t, 4, cfg.Int("workers"))
	assert.Equal(t, int64(4), cfg.Int64("workers"))
	assert.Equal(t, 0.75, cfg.Float64("ratio"))
	assert.True(t, cfg.Bool("banner"))
	assert.Equal(t, 90*time.Second, cfg.Duration("idle_timeout"))
	assert.Equal(t, []string{"GET", "POST"}, cfg.StringSlice("verbs"))
	assert.Equal(t, map[string]any{"level": "debug", "format": "text"}, cfg.StringMap("log"))
}

func TestGet_DotTraversal(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)

	assert.Equal(t, "debug", cfg.String("log.level"))
	assert.Equal(t, 32, cfg.Int("limits.depth.max"))
	assert.Nil(t, cfg.Get("log.level.deeper"))
	assert.Nil(t, cfg.Get("log.missing"))
}

func TestGet_LiteralKeyBeatsTraversal(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)
	assert.Equal(t, "direct", cfg.String("flat.key"))
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)

	assert.Nil(t, cfg.Get("absent"))
	assert.Equal(t, "", cfg.String("absent"))
	assert.Equal(t, 0, cfg.Int("absent"))
	assert.False(t, cfg.Bool("absent"))
	assert.Empty(t, cfg.StringSlice("absent"))
	assert.Empty(t, cfg.StringMap("absent"))
}

func TestGet_EmptyKey(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)
	assert.Nil(t, cfg.Get(""))
}

func TestGet_NilReceiver(t *testing.T) {
	t.Parallel()

	var cfg *Config
	assert.Nil(t, cfg.Get("listen"))
	assert.Equal(t, "", cfg.String("listen"))
}

func TestOrGetters(t *testing.T) {
	t.Parallel()

	cfg := getterConfig(t)

	assert.Equal(t, ":8000", cfg.StringOr("listen", ":9999"))
	assert.Equal(t, ":9999", cfg.StringOr("absent", ":9999"))
	assert.Equal(t, 4, cfg.IntOr("workers", 8))
	assert.Equal(t, 8, cfg.IntOr("absent", 8))
	assert.True(t, cfg.BoolOr("banner", false))
	assert.True(t, cfg.BoolOr("absent", true))
	assert.Equal(t, 90*time.Second, cfg.DurationOr("idle_timeout", time.Minute))
	assert.Equal(t, time.Minute, cfg.DurationOr("absent", time.Minute))
}

func TestOrGetters_EmptyStoredValue(t *testing.T) {
	t.Parallel()

	cfg := TestConfig(t, WithSource(TestSource(map[string]any{"prefix": ""})))
	assert.Equal(t, "", cfg.StringOr("prefix", "/api"), "a stored empty string is a value, not an absence")
}
