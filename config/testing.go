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
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSource is a Source over a fixed map or error.
type fakeSource struct {
	conf map[string]any
	err  error
}

func (f *fakeSource) Load(context.Context) (map[string]any, error) {
	return f.conf, f.err
}

// TestSource creates a source serving the given map.
func TestSource(conf map[string]any) Source {
	return &fakeSource{conf: conf}
}

// TestSourceWithError creates a source that fails every Load.
func TestSourceWithError(err error) Source {
	return &fakeSource{err: err}
}

// TestConfig creates and loads a Config for tests, failing the test
// on any error.
func TestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	cfg, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, cfg.Load(t.Context()))

	return cfg
}
