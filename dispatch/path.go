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

import "strings"

const (
	// DefaultAPIPrefix is the reserved prefix shared by both URL
	// conventions. Template routes are declared without it.
	DefaultAPIPrefix = "/api"

	// DefaultMethodPrefix marks the legacy dotted-method convention.
	// Paths under it are never rewritten.
	DefaultMethodPrefix = "/api/method/"
)

// EffectivePath normalizes a request path with the default prefixes:
// "/api/items/42" becomes "/items/42", while "/api/method/x.y.z" and
// every path outside the API prefix stay unchanged. The interceptor
// applies this before any template matching so templates are declared
// prefix-free.
func EffectivePath(path string) string {
	return effectivePath(path, DefaultAPIPrefix, DefaultMethodPrefix)
}

// effectivePath strips apiPrefix when the path continues past it with
// a '/' and is not under methodPrefix. "/api" alone and "/apifoo" are
// left as-is: the prefix only counts on a segment boundary.
func effectivePath(path, apiPrefix, methodPrefix string) string {
	if len(path) <= len(apiPrefix) || !strings.HasPrefix(path, apiPrefix) {
		return path
	}
	if path[len(apiPrefix)] != '/' {
		return path
	}
	if strings.HasPrefix(path, methodPrefix) {
		return path
	}
	return path[len(apiPrefix):]
}
