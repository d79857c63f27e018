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

package frappeapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i404788/frappeapi/compiler"
	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/route"
)

type allowCall struct {
	name  string
	verbs []string
	guest bool
	hasFn bool
}

type fakeAllower struct {
	calls []allowCall
}

func (f *fakeAllower) Allow(name string, fn host.DispatchFunc, verbs []string, allowGuest bool) {
	f.calls = append(f.calls, allowCall{name: name, verbs: verbs, guest: allowGuest, hasFn: fn != nil})
}

func TestVerbMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		register func(a *App) *route.Route
		want     []string
	}{
		{
			name:     "GET implies HEAD",
			register: func(a *App) *route.Route { return a.GET("/items/{code}", okHandler("x")) },
			want:     []string{"GET", "HEAD"},
		},
		{
			name:     "POST",
			register: func(a *App) *route.Route { return a.POST("/items", okHandler("x")) },
			want:     []string{"POST"},
		},
		{
			name:     "PUT",
			register: func(a *App) *route.Route { return a.PUT("/items/{code}", okHandler("x")) },
			want:     []string{"PUT"},
		},
		{
			name:     "DELETE",
			register: func(a *App) *route.Route { return a.DELETE("/items/{code}", okHandler("x")) },
			want:     []string{"DELETE"},
		},
		{
			name:     "PATCH",
			register: func(a *App) *route.Route { return a.PATCH("/items/{code}", okHandler("x")) },
			want:     []string{"PATCH"},
		},
		{
			name:     "OPTIONS",
			register: func(a *App) *route.Route { return a.OPTIONS("/items", okHandler("x")) },
			want:     []string{"OPTIONS"},
		},
		{
			name:     "HEAD alone",
			register: func(a *App) *route.Route { return a.HEAD("/items", okHandler("x")) },
			want:     []string{"HEAD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := New()
			r := tt.register(app)
			require.NotNil(t, r)
			assert.Equal(t, tt.want, r.Methods())
			assert.Equal(t, 1, app.Registry().Len())
		})
	}
}

func TestVerbMethods_PanicOnBadTemplate(t *testing.T) {
	t.Parallel()

	app := New()
	assert.Panics(t, func() {
		app.GET("/items/{", okHandler("x"))
	})
}

func TestHandle_CompileError(t *testing.T) {
	t.Parallel()

	app := New()
	r, err := app.Handle([]string{http.MethodGet}, "/items/{code:bogus}", okHandler("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, compiler.ErrInvalidTemplate)
	assert.Nil(t, r)
	assert.Zero(t, app.Registry().Len())
}

func TestHandle_DualRegistration(t *testing.T) {
	t.Parallel()

	allower := &fakeAllower{}
	app := New(WithAllower(allower))

	r := app.GET("/items/{code}", okHandler("x"),
		WithDottedPath("inventory.api.get_item"),
		WithGuest(),
	)
	require.NotNil(t, r)
	assert.True(t, r.AllowGuest())
	assert.Equal(t, 1, app.Registry().Len())

	require.Len(t, allower.calls, 1)
	call := allower.calls[0]
	assert.Equal(t, "inventory.api.get_item", call.name)
	assert.Equal(t, []string{"GET", "HEAD"}, call.verbs)
	assert.True(t, call.guest)
	assert.True(t, call.hasFn)
}

func TestHandle_PathlessRegistration(t *testing.T) {
	t.Parallel()

	allower := &fakeAllower{}
	app := New(WithAllower(allower))

	r := app.GET("", okHandler("pong"), WithDottedPath("inventory.api.ping"))
	assert.Nil(t, r, "path-less registrations produce no template route")
	assert.Zero(t, app.Registry().Len())

	require.Len(t, allower.calls, 1)
	call := allower.calls[0]
	assert.Equal(t, "inventory.api.ping", call.name)
	assert.Equal(t, []string{"GET"}, call.verbs, "declared verbs pass through untouched without a route")
	assert.False(t, call.guest)
}

func TestHandle_PathlessWithoutDotted(t *testing.T) {
	t.Parallel()

	app := New()
	r, err := app.Handle([]string{http.MethodGet}, "", okHandler("x"))
	assert.ErrorIs(t, err, ErrNoDottedPath)
	assert.Nil(t, r)

	assert.Panics(t, func() {
		app.GET("", okHandler("x"))
	})
}

func TestApplyWhitelist_Replays(t *testing.T) {
	t.Parallel()

	app := New()
	app.GET("/items/{code}", okHandler("x"), WithDottedPath("inventory.api.get_item"))
	app.POST("", okHandler("y"), WithDottedPath("inventory.api.submit"), WithGuest())

	allower := &fakeAllower{}
	app.ApplyWhitelist(allower)

	require.Len(t, allower.calls, 2)
	assert.Equal(t, "inventory.api.get_item", allower.calls[0].name)
	assert.Equal(t, "inventory.api.submit", allower.calls[1].name)
	assert.True(t, allower.calls[1].guest)

	app.GET("", okHandler("z"), WithDottedPath("inventory.api.ping"))
	require.Len(t, allower.calls, 3, "registrations after ApplyWhitelist forward immediately")
	assert.Equal(t, "inventory.api.ping", allower.calls[2].name)
}

func TestApplyWhitelist_NilIgnored(t *testing.T) {
	t.Parallel()

	app := New()
	app.ApplyWhitelist(nil)

	allower := &fakeAllower{}
	app.GET("", okHandler("x"), WithDottedPath("inventory.api.ping"))
	assert.Empty(t, allower.calls)
}

func TestHandleFunc(t *testing.T) {
	t.Parallel()

	app := New()
	r, err := app.HandleFunc([]string{http.MethodGet}, "/ping", func(*host.Context) (any, error) {
		return "pong", nil
	})
	require.NoError(t, err)
	require.NotNil(t, r)

	got, err := r.Handler().Invoke(host.NewContext(nil, http.MethodGet, "/ping"))
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}

func TestWhitelistIntegration(t *testing.T) {
	t.Parallel()

	wl := host.NewWhitelist()
	app := New(WithAllower(wl))
	app.GET("", okHandler("pong"), WithDottedPath("inventory.api.ping"), WithGuest())

	m, ok := wl.Resolve("inventory.api.ping")
	require.True(t, ok)
	assert.True(t, m.AllowGuest())
	assert.True(t, m.Allows(http.MethodGet))
	assert.False(t, m.Allows(http.MethodPost))
}
