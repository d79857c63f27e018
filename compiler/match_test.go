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
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchStatic tests matching of templates without parameters.
func TestMatchStatic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		path     string
		wantOK   bool
	}{
		{"exact match", "/ping", "/ping", true},
		{"different path", "/ping", "/pong", false},
		{"case sensitive", "/ping", "/Ping", false},
		{"prefix does not match", "/ping", "/ping/pong", false},
		{"suffix does not match", "/api/ping", "/ping", false},
		{"multi-segment exact", "/api/v1/items", "/api/v1/items", true},
		{"multi-segment partial", "/api/v1/items", "/api/v1", false},
		{"root matches root", "/", "/", true},
		{"root matches empty", "/", "", true},
		{"root rejects others", "/", "/x", false},
		{"trailing slash is distinct", "/ping", "/ping/", false},
		{"trailing slash template", "/ping/", "/ping/", true},
		{"trailing slash template rejects bare", "/ping/", "/ping", false},
		{"no leading slash", "/ping", "ping", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params, ok := MustCompile(tt.template).Match(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Nil(t, params)
		})
	}
}

// TestMatchParams tests parameter extraction and conversion.
func TestMatchParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		template   string
		path       string
		wantOK     bool
		wantParams Params
	}{
		{
			name:       "default converter yields string",
			template:   "/items/{code}",
			path:       "/items/42",
			wantOK:     true,
			wantParams: Params{"code": "42"},
		},
		{
			name:       "int converter yields int64",
			template:   "/items/{code:int}",
			path:       "/items/42",
			wantOK:     true,
			wantParams: Params{"code": int64(42)},
		},
		{
			name:     "int converter rejects letters",
			template: "/items/{code:int}",
			path:     "/items/abc",
			wantOK:   false,
		},
		{
			name:     "int converter rejects sign",
			template: "/items/{code:int}",
			path:     "/items/-1",
			wantOK:   false,
		},
		{
			name:       "float converter yields float64",
			template:   "/prices/{amount:float}",
			path:       "/prices/3.25",
			wantOK:     true,
			wantParams: Params{"amount": 3.25},
		},
		{
			name:     "float converter rejects exponent",
			template: "/prices/{amount:float}",
			path:     "/prices/1e3",
			wantOK:   false,
		},
		{
			name:       "uuid converter yields uuid.UUID",
			template:   "/entities/{ref:uuid}",
			path:       "/entities/c663e464-4946-4b32-9bb1-0d2f81bbd6e9",
			wantOK:     true,
			wantParams: Params{"ref": uuid.MustParse("c663e464-4946-4b32-9bb1-0d2f81bbd6e9")},
		},
		{
			name:     "uuid converter rejects junk",
			template: "/entities/{ref:uuid}",
			path:     "/entities/not-a-uuid",
			wantOK:   false,
		},
		{
			name:       "multiple parameters",
			template:   "/users/{uid}/posts/{pid:int}",
			path:       "/users/alice/posts/7",
			wantOK:     true,
			wantParams: Params{"uid": "alice", "pid": int64(7)},
		},
		{
			name:     "missing segment",
			template: "/items/{code}",
			path:     "/items",
			wantOK:   false,
		},
		{
			name:     "extra segment",
			template: "/items/{code}",
			path:     "/items/42/details",
			wantOK:   false,
		},
		{
			name:     "empty segment never converts",
			template: "/a/{p}/b",
			path:     "/a//b",
			wantOK:   false,
		},
		{
			name:     "trailing slash rejected for bare template",
			template: "/items/{code}",
			path:     "/items/42/",
			wantOK:   false,
		},
		{
			name:       "trailing slash template",
			template:   "/items/{code}/",
			path:       "/items/42/",
			wantOK:     true,
			wantParams: Params{"code": "42"},
		},
		{
			name:     "literal mismatch before parameter",
			template: "/items/{code}",
			path:     "/orders/42",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params, ok := MustCompile(tt.template).Match(tt.path)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantParams, params)
			} else {
				assert.Nil(t, params)
			}
		})
	}
}

// TestMatchRemainder tests path-converter templates.
func TestMatchRemainder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		template   string
		path       string
		wantOK     bool
		wantParams Params
	}{
		{
			name:       "captures nested path",
			template:   "/files/{filepath:path}",
			path:       "/files/docs/report.txt",
			wantOK:     true,
			wantParams: Params{"filepath": "docs/report.txt"},
		},
		{
			name:       "captures single segment",
			template:   "/files/{filepath:path}",
			path:       "/files/report.txt",
			wantOK:     true,
			wantParams: Params{"filepath": "report.txt"},
		},
		{
			name:       "captures empty remainder",
			template:   "/files/{filepath:path}",
			path:       "/files/",
			wantOK:     true,
			wantParams: Params{"filepath": ""},
		},
		{
			name:       "captures trailing slash",
			template:   "/files/{filepath:path}",
			path:       "/files/docs/",
			wantOK:     true,
			wantParams: Params{"filepath": "docs/"},
		},
		{
			name:     "requires separator before remainder",
			template: "/files/{filepath:path}",
			path:     "/files",
			wantOK:   false,
		},
		{
			name:       "remainder at root",
			template:   "/{rest:path}",
			path:       "/a/b/c",
			wantOK:     true,
			wantParams: Params{"rest": "a/b/c"},
		},
		{
			name:       "parameter before remainder",
			template:   "/repos/{owner}/raw/{rest:path}",
			path:       "/repos/alice/raw/src/main.go",
			wantOK:     true,
			wantParams: Params{"owner": "alice", "rest": "src/main.go"},
		},
		{
			name:     "literal mismatch before remainder",
			template: "/files/{filepath:path}",
			path:     "/blobs/docs/report.txt",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params, ok := MustCompile(tt.template).Match(tt.path)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}

// TestMatchDeepPath verifies matching beyond the stack segment buffer.
func TestMatchDeepPath(t *testing.T) {
	t.Parallel()

	const depth = 20
	segs := make([]string, depth)
	for i := range segs {
		segs[i] = "s"
	}
	template := "/" + strings.Join(segs, "/") + "/{id:int}"
	path := "/" + strings.Join(segs, "/") + "/9"

	params, ok := MustCompile(template).Match(path)
	require.True(t, ok)
	assert.Equal(t, Params{"id": int64(9)}, params)
}

// TestMatchFirstInterpretationWins verifies per-segment conversion is
// independent: a failed conversion rejects the match outright instead
// of retrying with different segment boundaries.
func TestMatchFirstInterpretationWins(t *testing.T) {
	t.Parallel()

	tmpl := MustCompile("/a/{x:int}/{y}")

	_, ok := tmpl.Match("/a/12/z")
	assert.True(t, ok)

	_, ok = tmpl.Match("/a/z/12")
	assert.False(t, ok)
}
