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
	"errors"
	"fmt"
	"strings"
)

// TypeEnvVar identifies the environment-variable line codec.
const TypeEnvVar Type = "env_var"

// ErrEnvEncodeUnsupported is returned by EnvVarCodec.Encode; the
// environment is read-only from the loader's point of view.
var ErrEnvEncodeUnsupported = errors.New("encoding to environment variables is not supported")

func init() {
	RegisterEncoder(TypeEnvVar, EnvVarCodec{})
	RegisterDecoder(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec decodes KEY=VALUE lines into a nested configuration map.
// Keys are lower-cased and split on underscores, each segment opening a
// nesting level: LOG_LEVEL=debug becomes log.level = "debug". Values
// stay strings; type coercion happens at binding time.
type EnvVarCodec struct{}

// Encode is unsupported for environment variables.
func (EnvVarCodec) Encode(any) ([]byte, error) {
	return nil, ErrEnvEncodeUnsupported
}

// Decode parses KEY=VALUE lines into the map pointed to by v. Lines
// without an equals sign and empty keys are skipped. A scalar written
// earlier under a key is replaced when a later line nests below it.
func (EnvVarCodec) Decode(data []byte, v any) error {
	out, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("env decode target must be *map[string]any, got %T", v)
	}

	conf := make(map[string]any)

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		parts := splitKey(key)
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, isMap := current[part].(map[string]any)
			if !isMap {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = value
	}

	*out = conf
	return nil
}

// splitKey lower-cases an environment key and splits it on
// underscores, dropping empty segments from doubled or leading
// underscores.
func splitKey(key string) []string {
	raw := strings.Split(strings.ToLower(key), "_")
	parts := raw[:0]
	for _, part := range raw {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
