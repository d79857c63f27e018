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
	"strings"
)

// GuestUser is the session user assigned to unauthenticated requests.
const GuestUser = "Guest"

// Context carries one request through dispatch: the HTTP verb, the raw
// request path, and the mutable parameter namespace handlers read from.
// Query parameters, form fields, and JSON body fields all land in the
// same namespace; extracted path parameters are merged in last and win
// on key collision.
//
// A Context is scoped to a single request and used by a single
// goroutine; it is not safe for concurrent use and must not be retained
// after dispatch completes.
type Context struct {
	ctx    context.Context
	method string
	path   string
	form   map[string]any
	user   string
	status int
}

// NewContext creates a request context. The method is upper-cased so
// matching is case-insensitive on the verb. The parameter namespace
// starts empty.
func NewContext(ctx context.Context, method, path string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		ctx:    ctx,
		method: strings.ToUpper(method),
		path:   path,
		form:   make(map[string]any),
		user:   GuestUser,
	}
}

// Context returns the underlying context.Context for cancellation and
// tracing propagation.
func (c *Context) Context() context.Context {
	return c.ctx
}

// SetContext replaces the underlying context.Context, typically with
// one enriched by a trace span. Nil contexts are ignored.
func (c *Context) SetContext(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
}

// Method returns the upper-cased HTTP verb.
func (c *Context) Method() string {
	return c.method
}

// Path returns the raw request path as received from the host. Prefix
// normalization happens inside the dispatch layer, not here.
func (c *Context) Path() string {
	return c.path
}

// Form returns the live parameter namespace. Mutations are visible to
// everything downstream, which is how the parameter bridge forwards
// extracted path parameters to handlers.
func (c *Context) Form() map[string]any {
	return c.form
}

// FormValue returns the named parameter and whether it is present.
func (c *Context) FormValue(key string) (any, bool) {
	v, ok := c.form[key]
	return v, ok
}

// SetFormValue sets a single parameter.
func (c *Context) SetFormValue(key string, value any) {
	c.form[key] = value
}

// MergeForm merges params into the namespace, overwriting existing keys.
// Path parameters are more specific than query or body parameters, so
// the caller merging last wins.
func (c *Context) MergeForm(params map[string]any) {
	for k, v := range params {
		c.form[k] = v
	}
}

// User returns the session user. Defaults to GuestUser until the host
// resolves a session.
func (c *Context) User() string {
	return c.user
}

// SetUser records the session user resolved by the host.
func (c *Context) SetUser(user string) {
	if user == "" {
		user = GuestUser
	}
	c.user = user
}

// Guest reports whether the request runs without an authenticated
// session.
func (c *Context) Guest() bool {
	return c.user == GuestUser
}

// ResponseStatus returns the HTTP status a handler or route requested
// for a successful response. Zero means the host default applies.
func (c *Context) ResponseStatus() int {
	return c.status
}

// SetResponseStatus requests an HTTP status for a successful response.
// Route-level status metadata is applied through this before the
// handler runs, so handlers can still override it.
func (c *Context) SetResponseStatus(status int) {
	c.status = status
}
