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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile tests template compilation with various patterns.
func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		template   string
		wantStatic bool
		wantParams []string
	}{
		{
			name:       "root template",
			template:   "/",
			wantStatic: true,
		},
		{
			name:       "simple static template",
			template:   "/ping",
			wantStatic: true,
		},
		{
			name:       "multi-segment static template",
			template:   "/api/v1/items",
			wantStatic: true,
		},
		{
			name:       "single parameter",
			template:   "/items/{code}",
			wantParams: []string{"code"},
		},
		{
			name:       "multiple parameters",
			template:   "/users/{uid}/posts/{pid}",
			wantParams: []string{"uid", "pid"},
		},
		{
			name:       "typed parameter",
			template:   "/orders/{id:int}",
			wantParams: []string{"id"},
		},
		{
			name:       "remainder parameter",
			template:   "/files/{filepath:path}",
			wantParams: []string{"filepath"},
		},
		{
			name:       "trailing slash template",
			template:   "/items/{code}/",
			wantParams: []string{"code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := Compile(tt.template)
			require.NoError(t, err)
			require.NotNil(t, tmpl)

			assert.Equal(t, tt.template, tmpl.Pattern())
			assert.Equal(t, tt.wantStatic, tmpl.Static())
			assert.Equal(t, tt.wantParams, tmpl.ParamNames())
		})
	}
}

// TestCompileErrors tests that malformed templates fail compilation.
func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{
			name:     "empty template",
			template: "",
			wantErr:  ErrEmptyTemplate,
		},
		{
			name:     "missing leading slash",
			template: "items/{code}",
			wantErr:  ErrNoLeadingSlash,
		},
		{
			name:     "empty segment",
			template: "/items//{code}",
			wantErr:  ErrEmptySegment,
		},
		{
			name:     "unbalanced open brace",
			template: "/items/{code",
			wantErr:  ErrUnbalancedBraces,
		},
		{
			name:     "unbalanced close brace",
			template: "/items/code}",
			wantErr:  ErrUnbalancedBraces,
		},
		{
			name:     "close before open",
			template: "/items/}code{",
			wantErr:  ErrUnbalancedBraces,
		},
		{
			name:     "literal text around parameter",
			template: "/v{major}",
			wantErr:  ErrMixedSegment,
		},
		{
			name:     "two parameters in one segment",
			template: "/{a}{b}",
			wantErr:  ErrMixedSegment,
		},
		{
			name:     "empty parameter name",
			template: "/items/{}",
			wantErr:  ErrEmptyParamName,
		},
		{
			name:     "empty name with converter",
			template: "/items/{:int}",
			wantErr:  ErrEmptyParamName,
		},
		{
			name:     "duplicate parameter name",
			template: "/users/{id}/posts/{id}",
			wantErr:  ErrDuplicateParam,
		},
		{
			name:     "unknown converter",
			template: "/items/{code:datetime}",
			wantErr:  ErrUnknownConverter,
		},
		{
			name:     "empty converter name",
			template: "/items/{code:}",
			wantErr:  ErrUnknownConverter,
		},
		{
			name:     "remainder not in final segment",
			template: "/files/{filepath:path}/meta",
			wantErr:  ErrRemainderNotLast,
		},
		{
			name:     "remainder with trailing slash",
			template: "/files/{filepath:path}/",
			wantErr:  ErrRemainderNotLast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := Compile(tt.template)
			require.Error(t, err)
			assert.Nil(t, tmpl)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

// TestCompileTrimsWhitespace verifies leading/trailing whitespace is ignored.
func TestCompileTrimsWhitespace(t *testing.T) {
	t.Parallel()

	tmpl, err := Compile("  /items/{code}  ")
	require.NoError(t, err)
	assert.Equal(t, "/items/{code}", tmpl.Pattern())
}

// TestMustCompile verifies panic behavior on invalid templates.
func TestMustCompile(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		tmpl := MustCompile("/items/{code}")
		assert.NotNil(t, tmpl)
	})

	assert.Panics(t, func() {
		MustCompile("/items/{code")
	})
}

// TestConverters verifies the parameter-to-converter mapping.
func TestConverters(t *testing.T) {
	t.Parallel()

	tmpl := MustCompile("/a/{s}/{i:int}/{f:float}/{u:uuid}")
	assert.Equal(t, map[string]string{
		"s": "str",
		"i": "int",
		"f": "float",
		"u": "uuid",
	}, tmpl.Converters())

	static := MustCompile("/ping")
	assert.Nil(t, static.Converters())
	assert.Nil(t, static.ParamNames())
}

// TestLookup verifies the built-in converter registry.
func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"str", "int", "float", "uuid", "path"} {
		conv, ok := Lookup(name)
		require.True(t, ok, "converter %q must be registered", name)
		assert.Equal(t, name, conv.Name())
	}

	_, ok := Lookup("datetime")
	assert.False(t, ok)
}
