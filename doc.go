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

// Package frappeapi adds parameterized URL routing to hosts that
// natively dispatch requests only by exact dotted method names.
//
// A host resolves /api/method/myapp.api.get_item by looking the name
// up in a whitelist. This package lets the same process also serve
// /api/items/{code}: an App holds an ordered registry of compiled path
// templates, and a dispatch interceptor installed in front of the
// host's dispatcher matches requests against every registered App,
// first full match wins. Requests no template claims fall through to
// the retained original dispatcher, byte for byte the behavior the
// host had before installation.
//
// # Registration
//
// Routes register through verb methods on an App. Path templates use
// brace parameters with optional converters (str, int, float, uuid,
// path); extracted values are merged into the request's parameter
// namespace before the handler runs, path parameters winning on
// collision:
//
//	app := frappeapi.New(
//	    frappeapi.WithTitle("Inventory"),
//	    frappeapi.WithVersion("1.2.0"),
//	)
//	frappeapi.DefaultApps.Register(app)
//
//	app.GET("/items/{code}", route.HandlerFunc(getItem))
//	app.POST("/items", route.HandlerFunc(createItem),
//	    frappeapi.WithMeta(route.WithStatusCode(http.StatusCreated)),
//	)
//
// A registration carrying WithDottedPath is dual: the handler is also
// whitelisted as a legacy dotted endpoint, so /api/method/<name>
// clients keep working. With an empty path the dotted endpoint is the
// only registration:
//
//	app.POST("/items/{code}/receive", route.HandlerFunc(receive),
//	    frappeapi.WithDottedPath("inventory.api.receive_item"),
//	)
//	app.GET("", route.HandlerFunc(ping),
//	    frappeapi.WithDottedPath("inventory.api.ping"),
//	)
//
// # Installation
//
// Install wires the process-default application set into a host's
// dispatch cell. The transition happens at most once per host; every
// later call is a silent no-op, so any registration site may install:
//
//	h, _ := host.New(host.NewDottedDispatcher(whitelist))
//	frappeapi.Install(h)
//
// Template-routed handler results pass through without the legacy
// message envelope, and handler errors propagate to the host's
// serialization layer with their identity intact. Per-app exception
// handlers registered with OnException shape those error responses
// without the dispatch layer ever observing them.
package frappeapi
