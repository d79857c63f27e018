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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/i404788/frappeapi/config/codec"
)

// Env loads configuration from environment variables sharing a prefix.
// The prefix is stripped and the remainder maps through the
// environment-variable codec, so FRAPPE_LOG_LEVEL=debug with prefix
// "FRAPPE_" becomes log.level = "debug".
type Env struct {
	prefix  string
	decoder codec.Decoder
}

// NewEnv creates an Env source for variables starting with prefix.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, decoder: codec.EnvVarCodec{}}
}

// Load reads the matching environment variables into a nested map.
func (e *Env) Load(context.Context) (map[string]any, error) {
	matched := make([]string, 0, len(os.Environ()))
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, e.prefix) {
			continue
		}
		matched = append(matched, strings.TrimPrefix(env, e.prefix))
	}

	var conf map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(matched, "\n")), &conf); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}

	return conf, nil
}
