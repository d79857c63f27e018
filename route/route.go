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
	"fmt"
	"strings"

	"github.com/i404788/frappeapi/compiler"
	"github.com/i404788/frappeapi/host"
)

// Handler is the capability a route dispatches to: one method, invoked
// with the request context, returning the response payload or an error.
// Errors propagate to the caller unmodified.
type Handler interface {
	Invoke(c *host.Context) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(c *host.Context) (any, error)

// Invoke calls the function.
func (f HandlerFunc) Invoke(c *host.Context) (any, error) {
	return f(c)
}

// MatchResult is the outcome of matching a request against a route.
type MatchResult uint8

const (
	// MatchNone means the path did not match the route's template.
	MatchNone MatchResult = iota
	// MatchPartial means the path matched but the HTTP verb is not in
	// the route's method set.
	MatchPartial
	// MatchFull means both path and verb matched and parameters were
	// extracted.
	MatchFull
)

// String returns the match result name.
func (m MatchResult) String() string {
	switch m {
	case MatchFull:
		return "full"
	case MatchPartial:
		return "partial"
	default:
		return "none"
	}
}

// Route is an immutable descriptor binding a compiled path template and
// a method set to a handler, plus presentation metadata. Routes are
// created by New and owned by the Registry they are added to.
type Route struct {
	template *compiler.Template
	methods  []string
	methodIn map[string]struct{}
	handler  Handler

	name          string
	summary       string
	description   string
	tags          []string
	responseModel any
	responseDesc  string
	contentType   string
	statusCode    int
	allowGuest    bool
	xssSafe       bool
	hidden        bool
}

// Option configures route metadata at construction time.
type Option func(*Route)

// WithName sets the route's display name.
func WithName(name string) Option {
	return func(r *Route) { r.name = name }
}

// WithSummary sets a one-line documentation summary.
func WithSummary(summary string) Option {
	return func(r *Route) { r.summary = summary }
}

// WithDescription sets the route's description for documentation.
func WithDescription(desc string) Option {
	return func(r *Route) { r.description = desc }
}

// WithTags sets documentation tags.
func WithTags(tags ...string) Option {
	return func(r *Route) { r.tags = tags }
}

// WithResponseModel records the response shape for the documentation
// and validation layers. The engine itself never inspects it.
func WithResponseModel(model any) Option {
	return func(r *Route) { r.responseModel = model }
}

// WithResponseDescription sets the documentation text for the success
// response.
func WithResponseDescription(desc string) Option {
	return func(r *Route) { r.responseDesc = desc }
}

// WithContentType records the response content type for the
// documentation layer. Serialization is owned by the host.
func WithContentType(ct string) Option {
	return func(r *Route) { r.contentType = ct }
}

// WithStatusCode sets the HTTP status used for successful responses.
func WithStatusCode(status int) Option {
	return func(r *Route) { r.statusCode = status }
}

// WithAllowGuest marks the route callable without an authenticated
// session. Enforcement happens in the permission layer, not here.
func WithAllowGuest() Option {
	return func(r *Route) { r.allowGuest = true }
}

// WithXSSSafe declares the handler's output safe to return without
// sanitization. Like the guest flag, consumed by the host, not here.
func WithXSSSafe() Option {
	return func(r *Route) { r.xssSafe = true }
}

// WithHidden excludes the route from documentation output. It still
// matches and dispatches normally.
func WithHidden() Option {
	return func(r *Route) { r.hidden = true }
}

// New compiles the template and builds a route descriptor.
//
// Methods are upper-cased and de-duplicated preserving first
// occurrence order; an empty method list is an error. Declaring GET
// implies HEAD, mirroring the behavior of OpenAPI-style routers.
//
// Template compilation failures surface here, at registration time,
// wrapped around compiler.ErrInvalidTemplate.
func New(template string, methods []string, handler Handler, opts ...Option) (*Route, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: template %q", ErrNoMethods, template)
	}

	tmpl, err := compiler.Compile(template)
	if err != nil {
		return nil, err
	}

	r := &Route{
		template: tmpl,
		handler:  handler,
		methodIn: make(map[string]struct{}, len(methods)+1),
	}

	for _, m := range methods {
		r.addMethod(strings.ToUpper(strings.TrimSpace(m)))
	}
	if _, ok := r.methodIn["GET"]; ok {
		r.addMethod("HEAD")
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// MustNew builds a route or panics. Intended for static registration.
func MustNew(template string, methods []string, handler Handler, opts ...Option) *Route {
	r, err := New(template, methods, handler, opts...)
	if err != nil {
		panic("route: " + err.Error())
	}
	return r
}

func (r *Route) addMethod(m string) {
	if m == "" {
		return
	}
	if _, dup := r.methodIn[m]; dup {
		return
	}
	r.methodIn[m] = struct{}{}
	r.methods = append(r.methods, m)
}

// Match checks the verb and path against this route.
//
// The path is matched first: a failed path match is MatchNone
// regardless of the verb. A matched path with a verb outside the method
// set is MatchPartial with no parameters. Only MatchFull carries
// extracted parameters.
func (r *Route) Match(method, path string) (compiler.Params, MatchResult) {
	params, ok := r.template.Match(path)
	if !ok {
		return nil, MatchNone
	}

	if _, allowed := r.methodIn[strings.ToUpper(method)]; !allowed {
		return nil, MatchPartial
	}

	return params, MatchFull
}

// Invoke runs the route's handler.
func (r *Route) Invoke(c *host.Context) (any, error) {
	return r.handler.Invoke(c)
}

// Pattern returns the original template string.
func (r *Route) Pattern() string {
	return r.template.Pattern()
}

// Template returns the compiled template.
func (r *Route) Template() *compiler.Template {
	return r.template
}

// Methods returns the accepted verbs in declaration order.
func (r *Route) Methods() []string {
	out := make([]string, len(r.methods))
	copy(out, r.methods)
	return out
}

// Handler returns the route's handler.
func (r *Route) Handler() Handler {
	return r.handler
}

// Name returns the route's display name, falling back to the pattern.
func (r *Route) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.template.Pattern()
}

// Summary returns the one-line documentation summary.
func (r *Route) Summary() string {
	return r.summary
}

// Description returns the documentation description.
func (r *Route) Description() string {
	return r.description
}

// Tags returns the documentation tags.
func (r *Route) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// ResponseModel returns the recorded response shape, or nil.
func (r *Route) ResponseModel() any {
	return r.responseModel
}

// ResponseDescription returns the success response documentation text.
func (r *Route) ResponseDescription() string {
	return r.responseDesc
}

// ContentType returns the recorded response content type, or empty for
// the host default.
func (r *Route) ContentType() string {
	return r.contentType
}

// StatusCode returns the configured success status, or zero for the
// host default.
func (r *Route) StatusCode() int {
	return r.statusCode
}

// AllowGuest reports whether the route is callable without a session.
func (r *Route) AllowGuest() bool {
	return r.allowGuest
}

// XSSSafe reports whether output sanitization may be skipped.
func (r *Route) XSSSafe() bool {
	return r.xssSafe
}

// Hidden reports whether the route is excluded from documentation.
func (r *Route) Hidden() bool {
	return r.hidden
}
