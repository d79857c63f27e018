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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeYAML, TypeJSON, TypeTOML, TypeEnvVar} {
		_, err := GetDecoder(typ)
		assert.NoError(t, err, "decoder for %s", typ)

		_, err = GetEncoder(typ)
		assert.NoError(t, err, "encoder for %s", typ)
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := GetDecoder("carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoder not found")

	_, err = GetEncoder("carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoder not found")
}

func TestYAMLCodec_Decode(t *testing.T) {
	t.Parallel()

	data := []byte("listen: \":9000\"\nlog:\n  level: debug\n")

	var conf map[string]any
	require.NoError(t, YAMLCodec{}.Decode(data, &conf))

	assert.Equal(t, ":9000", conf["listen"])
	assert.Equal(t, map[string]any{"level": "debug"}, conf["log"])
}

func TestJSONCodec_Decode(t *testing.T) {
	t.Parallel()

	data := []byte(`{"listen": ":9000", "log": {"level": "debug"}}`)

	var conf map[string]any
	require.NoError(t, JSONCodec{}.Decode(data, &conf))

	assert.Equal(t, ":9000", conf["listen"])
	assert.Equal(t, map[string]any{"level": "debug"}, conf["log"])
}

func TestTOMLCodec_Decode(t *testing.T) {
	t.Parallel()

	data := []byte("listen = \":9000\"\n\n[log]\nlevel = \"debug\"\n")

	var conf map[string]any
	require.NoError(t, TOMLCodec{}.Decode(data, &conf))

	assert.Equal(t, ":9000", conf["listen"])
	assert.Equal(t, map[string]any{"level": "debug"}, conf["log"])
}

func TestEnvVarCodec_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want map[string]any
	}{
		{
			name: "flat and nested keys",
			data: "LISTEN=:9000\nLOG_LEVEL=debug",
			want: map[string]any{
				"listen": ":9000",
				"log":    map[string]any{"level": "debug"},
			},
		},
		{
			name: "lines without equals are skipped",
			data: "GARBAGE\nLISTEN=:9000",
			want: map[string]any{"listen": ":9000"},
		},
		{
			name: "empty keys are skipped",
			data: "=value\n  =other",
			want: map[string]any{},
		},
		{
			name: "doubled underscores collapse",
			data: "__LOG__LEVEL=debug",
			want: map[string]any{"log": map[string]any{"level": "debug"}},
		},
		{
			name: "value keeps later equals signs",
			data: "OPTS=a=b",
			want: map[string]any{"opts": "a=b"},
		},
		{
			name: "scalar replaced when a later line nests below it",
			data: "LOG=basic\nLOG_LEVEL=debug",
			want: map[string]any{"log": map[string]any{"level": "debug"}},
		},
		{
			name: "empty input",
			data: "",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var conf map[string]any
			require.NoError(t, EnvVarCodec{}.Decode([]byte(tt.data), &conf))
			assert.Equal(t, tt.want, conf)
		})
	}
}

func TestEnvVarCodec_DecodeWrongTarget(t *testing.T) {
	t.Parallel()

	var s string
	err := EnvVarCodec{}.Decode([]byte("A=b"), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be *map[string]any")
}

func TestEnvVarCodec_EncodeUnsupported(t *testing.T) {
	t.Parallel()

	_, err := EnvVarCodec{}.Encode(map[string]any{"a": "b"})
	assert.ErrorIs(t, err, ErrEnvEncodeUnsupported)
}
