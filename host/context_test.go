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

package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	t.Run("method upper-cased", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "get", "/items/42")
		assert.Equal(t, "GET", c.Method())
		assert.Equal(t, "/items/42", c.Path())
	})

	t.Run("defaults to guest", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "GET", "/")
		assert.Equal(t, GuestUser, c.User())
		assert.True(t, c.Guest())
	})

	t.Run("nil context tolerated", func(t *testing.T) {
		t.Parallel()
		c := NewContext(nil, "GET", "/") //nolint:staticcheck // verifying nil handling
		assert.NotNil(t, c.Context())
	})

	t.Run("empty namespace", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "GET", "/")
		assert.Empty(t, c.Form())
	})
}

func TestContext_Form(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "POST", "/items")
		c.SetFormValue("name", "Widget")

		v, ok := c.FormValue("name")
		require.True(t, ok)
		assert.Equal(t, "Widget", v)

		_, ok = c.FormValue("missing")
		assert.False(t, ok)
	})

	t.Run("merge overwrites existing keys", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "GET", "/items/42")
		c.SetFormValue("code", "from-query")
		c.SetFormValue("page", "2")

		c.MergeForm(map[string]any{"code": int64(42)})

		v, ok := c.FormValue("code")
		require.True(t, ok)
		assert.Equal(t, int64(42), v, "path parameter must win on collision")

		v, ok = c.FormValue("page")
		require.True(t, ok)
		assert.Equal(t, "2", v, "unrelated keys survive the merge")
	})

	t.Run("live map", func(t *testing.T) {
		t.Parallel()
		c := NewContext(context.Background(), "GET", "/")
		c.Form()["direct"] = true

		v, ok := c.FormValue("direct")
		require.True(t, ok)
		assert.Equal(t, true, v)
	})
}

func TestContext_User(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), "GET", "/")

	c.SetUser("alice@example.com")
	assert.Equal(t, "alice@example.com", c.User())
	assert.False(t, c.Guest())

	c.SetUser("")
	assert.Equal(t, GuestUser, c.User())
	assert.True(t, c.Guest())
}

func TestContext_ResponseStatus(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), "POST", "/items")
	assert.Zero(t, c.ResponseStatus())

	c.SetResponseStatus(201)
	assert.Equal(t, 201, c.ResponseStatus())
}
