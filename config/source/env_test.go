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

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_Load(t *testing.T) {
	t.Setenv("FRAPPESRC_LISTEN", ":7000")
	t.Setenv("FRAPPESRC_LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VALUE", "ignored")

	src := NewEnv("FRAPPESRC_")

	conf, err := src.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"listen": ":7000",
		"log":    map[string]any{"level": "debug"},
	}, conf)
}

func TestEnv_LoadNoMatches(t *testing.T) {
	src := NewEnv("FRAPPENOMATCH_")

	conf, err := src.Load(t.Context())
	require.NoError(t, err)
	assert.Empty(t, conf)
}
