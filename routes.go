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
	"errors"
	"fmt"
	"net/http"

	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/route"
)

// ErrNoDottedPath is returned by Handle when neither a path template
// nor a dotted path is given, leaving nothing to register.
var ErrNoDottedPath = errors.New("path-less registration requires a dotted path")

// RouteOption configures one registration.
type RouteOption func(*routeConfig)

// routeConfig accumulates registration configuration.
type routeConfig struct {
	opts   []route.Option
	dotted string
	guest  bool
}

// WithMeta attaches route metadata options to the registration.
//
//	app.GET("/items/{code}", getItem,
//	    frappeapi.WithMeta(
//	        route.WithName("get-item"),
//	        route.WithTags("items"),
//	    ),
//	)
func WithMeta(opts ...route.Option) RouteOption {
	return func(c *routeConfig) {
		c.opts = append(c.opts, opts...)
	}
}

// WithDottedPath additionally registers the handler as a legacy
// dotted-method endpoint under the given name, so existing
// /api/method/<name> clients, validation, and docs keep working. With
// an empty path it is the only registration: the endpoint exists on
// the legacy dispatch path alone.
func WithDottedPath(name string) RouteOption {
	return func(c *routeConfig) {
		c.dotted = name
	}
}

// WithGuest marks the registration callable without an authenticated
// session, on both the template route and the dotted endpoint.
func WithGuest() RouteOption {
	return func(c *routeConfig) {
		c.guest = true
		c.opts = append(c.opts, route.WithAllowGuest())
	}
}

// Handle registers a handler for the given verbs.
//
// With a non-empty path the template is compiled and the route joins
// the app's registry; WithDottedPath additionally whitelists the
// dotted endpoint (dual registration). With an empty path only the
// dotted endpoint is registered and the returned route is nil.
//
// Compilation failures surface here as errors wrapping
// compiler.ErrInvalidTemplate. The verb methods panic instead, for
// static init-time registration.
func (a *App) Handle(methods []string, path string, handler route.Handler, opts ...RouteOption) (*route.Route, error) {
	cfg := &routeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if path == "" {
		if cfg.dotted == "" {
			return nil, ErrNoDottedPath
		}
		a.allow(cfg.dotted, handler, methods, cfg.guest)
		return nil, nil
	}

	r, err := route.New(path, methods, handler, cfg.opts...)
	if err != nil {
		return nil, err
	}
	a.registry.Add(r)
	a.logger.Debug("route registered", "path", r.Pattern(), "methods", r.Methods())

	if cfg.dotted != "" {
		a.allow(cfg.dotted, handler, r.Methods(), r.AllowGuest())
	}

	return r, nil
}

// HandleFunc is Handle for a plain function.
func (a *App) HandleFunc(methods []string, path string, handler func(*host.Context) (any, error), opts ...RouteOption) (*route.Route, error) {
	return a.Handle(methods, path, route.HandlerFunc(handler), opts...)
}

// GET registers a GET handler. Declaring GET implies HEAD on the
// template route. An empty path registers only the dotted endpoint and
// returns nil; see Handle. Panics on an invalid template.
func (a *App) GET(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodGet}, path, handler, opts...)
}

// POST registers a POST handler.
func (a *App) POST(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodPost}, path, handler, opts...)
}

// PUT registers a PUT handler.
func (a *App) PUT(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodPut}, path, handler, opts...)
}

// DELETE registers a DELETE handler.
func (a *App) DELETE(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodDelete}, path, handler, opts...)
}

// PATCH registers a PATCH handler.
func (a *App) PATCH(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodPatch}, path, handler, opts...)
}

// OPTIONS registers an OPTIONS handler.
func (a *App) OPTIONS(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodOptions}, path, handler, opts...)
}

// HEAD registers a HEAD handler.
func (a *App) HEAD(path string, handler route.Handler, opts ...RouteOption) *route.Route {
	return a.mustHandle([]string{http.MethodHead}, path, handler, opts...)
}

func (a *App) mustHandle(methods []string, path string, handler route.Handler, opts ...RouteOption) *route.Route {
	r, err := a.Handle(methods, path, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("frappeapi: %v", err))
	}
	return r
}
