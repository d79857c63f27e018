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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRegistry_Add(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())

	first := MustNew("/ping", []string{"GET"}, okHandler("one"))
	second := MustNew("/items/{code}", []string{"POST"}, okHandler("two"))

	reg.Add(first)
	reg.Add(second)

	require.Equal(t, 2, reg.Len())
	routes := reg.Routes()
	assert.Same(t, first, routes[0])
	assert.Same(t, second, routes[1])
}

func TestRegistry_AddNilIgnored(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Add(nil)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_DuplicatePatternsKept(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Add(MustNew("/ping", []string{"GET"}, okHandler("first")))
	reg.Add(MustNew("/ping", []string{"GET"}, okHandler("second")))

	routes := reg.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, routes[0].Pattern(), routes[1].Pattern())
}

func TestRegistry_RoutesIsStableView(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Add(MustNew("/a", []string{"GET"}, okHandler("a")))

	view := reg.Routes()
	reg.Add(MustNew("/b", []string{"GET"}, okHandler("b")))

	assert.Len(t, view, 1)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				reg.Add(MustNew("/ping", []string{"GET"}, okHandler("ok")))
				reg.Routes()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, reg.Len())
}

func TestRegistry_Describe(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Add(MustNew("/items/{id:int}", []string{"GET"}, okHandler("ok"),
		WithName("get-item"),
		WithDescription("Fetch one item"),
		WithTags("items"),
	))
	reg.Add(MustNew("/internal/debug", []string{"GET"}, okHandler("ok"), WithHidden()))

	infos := reg.Describe()
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, "get-item", info.Name)
	assert.Equal(t, "/items/{id:int}", info.Path)
	assert.Equal(t, []string{"GET", "HEAD"}, info.Methods)
	assert.Equal(t, "Fetch one item", info.Description)
	assert.Equal(t, []string{"items"}, info.Tags)
	assert.Equal(t, map[string]string{"id": "int"}, info.Params)
}

func TestRegistry_DescribeYAML(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Add(MustNew("/ping", []string{"GET"}, okHandler("pong"), WithName("ping")))

	out, err := reg.DescribeYAML()
	require.NoError(t, err)

	var decoded []Info
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "ping", decoded[0].Name)
	assert.Equal(t, "/ping", decoded[0].Path)
}
