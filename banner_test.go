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
	"bytes"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i404788/frappeapi/route"
)

func TestPrintBanner(t *testing.T) {
	t.Parallel()

	app := New(WithTitle("Inventory"), WithVersion("1.2.3"))
	app.GET("/items/{code}", okHandler("item"), WithMeta(route.WithName("get-item")))
	app.POST("/items", okHandler("created"))

	var buf bytes.Buffer
	app.PrintBanner(&buf, ":8000")

	output := buf.String()
	assert.Contains(t, output, "Version:")
	assert.Contains(t, output, "1.2.3")
	assert.Contains(t, output, "Address:")
	assert.Contains(t, output, "http://0.0.0.0:8000")
	assert.Contains(t, output, "Method")
	assert.Contains(t, output, "/items/{code}")
	assert.Contains(t, output, "get-item")
}

func TestPrintBanner_NoRoutes(t *testing.T) {
	t.Parallel()

	app := New()

	var buf bytes.Buffer
	app.PrintBanner(&buf, "")

	output := buf.String()
	assert.Contains(t, output, "Version:")
	assert.NotContains(t, output, "Address:", "no address line without a listen address")
	assert.NotContains(t, output, "Method", "no routes table without routes")
}

func TestPrintBanner_ExplicitHost(t *testing.T) {
	t.Parallel()

	app := New()

	var buf bytes.Buffer
	app.PrintBanner(&buf, "127.0.0.1:9000")

	assert.Contains(t, buf.String(), "http://127.0.0.1:9000")
}

// Cannot use t.Parallel(): this test swaps out os.Stdout.
func TestPrintRoutes_Output(t *testing.T) {
	app := New()
	app.GET("/items/{code}", okHandler("item"))
	app.POST("/items", okHandler("created"), WithGuest())

	var buf bytes.Buffer
	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	app.PrintRoutes()

	require.NoError(t, w.Close())
	os.Stdout = originalStdout

	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "Method")
	assert.Contains(t, output, "Path")
	assert.Contains(t, output, "Access")
	assert.Contains(t, output, http.MethodGet)
	assert.Contains(t, output, http.MethodPost)
	assert.Contains(t, output, "/items/{code}")
	assert.Contains(t, output, "guest")
}

// Cannot use t.Parallel(): this test swaps out os.Stdout.
func TestPrintRoutes_Empty(t *testing.T) {
	app := New()

	var buf bytes.Buffer
	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	app.PrintRoutes()

	require.NoError(t, w.Close())
	os.Stdout = originalStdout

	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No routes registered")
}

func TestRenderRoutesTable_Empty(t *testing.T) {
	t.Parallel()

	app := New()

	var buf bytes.Buffer
	app.renderRoutesTable(&buf)
	assert.Empty(t, buf.String())
}
