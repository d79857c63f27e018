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

// Package route binds compiled path templates to handlers and keeps
// them in ordered registries.
//
// A Route pairs a template, a method set, and a Handler, plus metadata
// consumed by documentation and permission layers. A Registry is an
// append-only ordered collection of routes; insertion order is match
// precedence, and duplicate patterns are deliberately allowed: the
// earlier registration simply wins every request.
//
//	reg := route.NewRegistry()
//	reg.Add(route.MustNew("/items/{code}", []string{"GET"},
//	    route.HandlerFunc(func(c *host.Context) (any, error) {
//	        code, _ := c.FormValue("code")
//	        return map[string]any{"code": code}, nil
//	    }),
//	))
//
// Matching distinguishes three outcomes: MatchFull (verb and path
// matched, parameters extracted), MatchPartial (path matched, verb did
// not), and MatchNone. The dispatch layer treats MatchPartial as
// falling through to the legacy dispatcher.
package route
