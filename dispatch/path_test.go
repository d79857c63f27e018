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

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "api prefix stripped",
			path: "/api/items/42",
			want: "/items/42",
		},
		{
			name: "dotted method path untouched",
			path: "/api/method/x.y.z",
			want: "/api/method/x.y.z",
		},
		{
			name: "plain path untouched",
			path: "/items/42",
			want: "/items/42",
		},
		{
			name: "bare prefix untouched",
			path: "/api",
			want: "/api",
		},
		{
			name: "prefix without boundary untouched",
			path: "/apifoo",
			want: "/apifoo",
		},
		{
			name: "prefix with trailing slash only",
			path: "/api/",
			want: "/",
		},
		{
			name: "method prefix without trailing segment is stripped",
			path: "/api/method",
			want: "/method",
		},
		{
			name: "nested resource",
			path: "/api/resource/Item/ITM-0001",
			want: "/resource/Item/ITM-0001",
		},
		{
			name: "root untouched",
			path: "/",
			want: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EffectivePath(tt.path))
		})
	}
}

func TestEffectivePath_CustomPrefixes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/items/1", effectivePath("/v2/items/1", "/v2", "/v2/rpc/"))
	assert.Equal(t, "/v2/rpc/x.y", effectivePath("/v2/rpc/x.y", "/v2", "/v2/rpc/"))
	assert.Equal(t, "/api/items/1", effectivePath("/api/items/1", "/v2", "/v2/rpc/"))
}
