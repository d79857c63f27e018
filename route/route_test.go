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

package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i404788/frappeapi/compiler"
	"github.com/i404788/frappeapi/host"
)

func okHandler(result any) Handler {
	return HandlerFunc(func(c *host.Context) (any, error) {
		return result, nil
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid route", func(t *testing.T) {
		t.Parallel()
		r, err := New("/items/{code}", []string{"GET"}, okHandler("ok"))
		require.NoError(t, err)
		assert.Equal(t, "/items/{code}", r.Pattern())
		assert.Equal(t, []string{"GET", "HEAD"}, r.Methods())
	})

	t.Run("nil handler", func(t *testing.T) {
		t.Parallel()
		_, err := New("/items", []string{"GET"}, nil)
		assert.ErrorIs(t, err, ErrNilHandler)
	})

	t.Run("no methods", func(t *testing.T) {
		t.Parallel()
		_, err := New("/items", nil, okHandler("ok"))
		assert.ErrorIs(t, err, ErrNoMethods)
	})

	t.Run("invalid template", func(t *testing.T) {
		t.Parallel()
		_, err := New("/items/{", []string{"GET"}, okHandler("ok"))
		assert.ErrorIs(t, err, compiler.ErrInvalidTemplate)
	})

	t.Run("duplicate parameter", func(t *testing.T) {
		t.Parallel()
		_, err := New("/x/{a}/{a}", []string{"GET"}, okHandler("ok"))
		assert.ErrorIs(t, err, compiler.ErrDuplicateParam)
	})

	t.Run("methods normalized", func(t *testing.T) {
		t.Parallel()
		r, err := New("/items", []string{"post", "GET", "Post"}, okHandler("ok"))
		require.NoError(t, err)
		assert.Equal(t, []string{"POST", "GET", "HEAD"}, r.Methods())
	})

	t.Run("no implicit head without get", func(t *testing.T) {
		t.Parallel()
		r, err := New("/items", []string{"POST"}, okHandler("ok"))
		require.NoError(t, err)
		assert.Equal(t, []string{"POST"}, r.Methods())
	})
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		MustNew("/ping", []string{"GET"}, okHandler("pong"))
	})

	assert.Panics(t, func() {
		MustNew("/{", []string{"GET"}, okHandler("pong"))
	})
}

func TestRoute_Match(t *testing.T) {
	t.Parallel()

	r := MustNew("/items/{id:int}", []string{"GET"}, okHandler("ok"))

	tests := []struct {
		name       string
		method     string
		path       string
		want       MatchResult
		wantParams compiler.Params
	}{
		{
			name:       "full match",
			method:     "GET",
			path:       "/items/42",
			want:       MatchFull,
			wantParams: compiler.Params{"id": int64(42)},
		},
		{
			name:       "implicit head",
			method:     "HEAD",
			path:       "/items/42",
			want:       MatchFull,
			wantParams: compiler.Params{"id": int64(42)},
		},
		{
			name:       "lower-case verb",
			method:     "get",
			path:       "/items/42",
			want:       MatchFull,
			wantParams: compiler.Params{"id": int64(42)},
		},
		{
			name:   "path matches but verb does not",
			method: "POST",
			path:   "/items/42",
			want:   MatchPartial,
		},
		{
			name:   "conversion failure is no match",
			method: "GET",
			path:   "/items/abc",
			want:   MatchNone,
		},
		{
			name:   "different path",
			method: "GET",
			path:   "/users/42",
			want:   MatchNone,
		},
		{
			name:   "prefix only",
			method: "GET",
			path:   "/items/42/detail",
			want:   MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params, result := r.Match(tt.method, tt.path)
			assert.Equal(t, tt.want, result)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestMatchResult_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "full", MatchFull.String())
	assert.Equal(t, "partial", MatchPartial.String())
	assert.Equal(t, "none", MatchNone.String())
}

func TestRoute_Metadata(t *testing.T) {
	t.Parallel()

	r := MustNew("/items/{code}", []string{"POST"}, okHandler("ok"),
		WithName("create-item"),
		WithSummary("Create an item"),
		WithDescription("Creates an item"),
		WithTags("items", "write"),
		WithStatusCode(http.StatusCreated),
		WithAllowGuest(),
		WithXSSSafe(),
		WithHidden(),
		WithResponseModel(map[string]string{"name": ""}),
		WithResponseDescription("The created item"),
		WithContentType("application/json"),
	)

	assert.Equal(t, "create-item", r.Name())
	assert.Equal(t, "Create an item", r.Summary())
	assert.Equal(t, "Creates an item", r.Description())
	assert.Equal(t, []string{"items", "write"}, r.Tags())
	assert.Equal(t, http.StatusCreated, r.StatusCode())
	assert.True(t, r.AllowGuest())
	assert.True(t, r.XSSSafe())
	assert.True(t, r.Hidden())
	assert.NotNil(t, r.ResponseModel())
	assert.Equal(t, "The created item", r.ResponseDescription())
	assert.Equal(t, "application/json", r.ContentType())
}

func TestRoute_NameFallsBackToPattern(t *testing.T) {
	t.Parallel()

	r := MustNew("/ping", []string{"GET"}, okHandler("pong"))
	assert.Equal(t, "/ping", r.Name())
}

func TestRoute_Invoke(t *testing.T) {
	t.Parallel()

	r := MustNew("/items/{code}", []string{"GET"}, HandlerFunc(func(c *host.Context) (any, error) {
		code, _ := c.FormValue("code")
		return map[string]any{"code": code}, nil
	}))

	c := host.NewContext(context.Background(), "GET", "/items/42")
	c.SetFormValue("code", "42")

	result, err := r.Invoke(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"code": "42"}, result)
}

func TestRoute_AccessorsCopy(t *testing.T) {
	t.Parallel()

	r := MustNew("/items", []string{"GET"}, okHandler("ok"), WithTags("a"))

	r.Methods()[0] = "DELETE"
	assert.Equal(t, []string{"GET", "HEAD"}, r.Methods())

	r.Tags()[0] = "mutated"
	assert.Equal(t, []string{"a"}, r.Tags())
}
