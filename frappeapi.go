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
	stderrors "errors"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/i404788/frappeapi/dispatch"
	"github.com/i404788/frappeapi/errors"
	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/logging"
	"github.com/i404788/frappeapi/route"
)

// OpenAPIVersion is the OpenAPI revision the introspection output
// targets.
const OpenAPIVersion = "3.1.0"

// DefaultApps is the process-default application set. It is an
// explicit exported object, not a hidden registry: applications join
// it by calling Register, and Install passes it into the interceptor
// by reference. Programs wanting isolation build their own
// dispatch.AppSet and use dispatch.Install directly.
var DefaultApps = dispatch.NewAppSet()

// Install wraps the host's dispatcher with an interceptor consulting
// DefaultApps. The first call per host performs the transition; later
// calls are silent no-ops, so every registration site may call it.
func Install(h *host.Host, opts ...dispatch.Option) (*dispatch.Interceptor, error) {
	return dispatch.Install(h, DefaultApps, opts...)
}

// Contact is the API maintainer listing for the introspection output.
type Contact struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// License identifies the API license.
type License struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Server is one server entry in the API description.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tag is a documentation tag with its description.
type Tag struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ExceptionHandler builds the HTTP error response for an error it was
// registered against. It runs in the host's serialization layer, after
// the error has propagated out of dispatch with its identity intact.
type ExceptionHandler func(req *http.Request, err error) errors.Response

type excEntry struct {
	match   func(error) bool
	handler ExceptionHandler
}

// endpoint is one recorded dotted-path whitelist intent, kept so a
// host attached after registration still receives every endpoint.
type endpoint struct {
	name  string
	fn    host.DispatchFunc
	verbs []string
	guest bool
}

// App is one application instance: an ordered route registry, the
// dotted-path endpoints it whitelists, its API document identity, and
// its exception handler table. Route registration happens through the
// verb methods; dispatch happens through an interceptor consulting an
// AppSet the App was registered into.
//
//	app := frappeapi.New(frappeapi.WithTitle("Inventory"))
//	frappeapi.DefaultApps.Register(app)
//
//	app.GET("/items/{code}", getItem)
type App struct {
	title          string
	summary        string
	description    string
	version        string
	termsOfService string
	contact        *Contact
	license        *License
	servers        []Server
	tags           []Tag

	registry *route.Registry
	logger   logging.Logger

	mu          sync.RWMutex
	allower     host.Allower
	endpoints   []endpoint
	excHandlers []excEntry
}

// Option configures an App at construction.
type Option func(*App)

// WithTitle sets the API title. Empty titles are ignored; the default
// is "Frappe API".
func WithTitle(title string) Option {
	return func(a *App) {
		if title != "" {
			a.title = title
		}
	}
}

// WithSummary sets the one-line API summary.
func WithSummary(summary string) Option {
	return func(a *App) { a.summary = summary }
}

// WithDescription sets the long-form API description.
func WithDescription(description string) Option {
	return func(a *App) { a.description = description }
}

// WithVersion sets the API version. Empty versions are ignored; the
// default is "0.1.0".
func WithVersion(version string) Option {
	return func(a *App) {
		if version != "" {
			a.version = version
		}
	}
}

// WithServers sets the server list for the introspection output.
func WithServers(servers ...Server) Option {
	return func(a *App) { a.servers = servers }
}

// WithOpenAPITags sets the documented tag descriptions.
func WithOpenAPITags(tags ...Tag) Option {
	return func(a *App) { a.tags = tags }
}

// WithTermsOfService sets the terms-of-service URL.
func WithTermsOfService(url string) Option {
	return func(a *App) { a.termsOfService = url }
}

// WithContact sets the maintainer contact.
func WithContact(c Contact) Option {
	return func(a *App) { a.contact = &c }
}

// WithLicense sets the API license.
func WithLicense(l License) Option {
	return func(a *App) { a.license = &l }
}

// WithAllower attaches the host's whitelisting hook. Dotted-path
// registrations forward to it as they happen. Without an allower the
// intents are recorded and replayed by ApplyWhitelist.
func WithAllower(allower host.Allower) Option {
	return func(a *App) { a.allower = allower }
}

// WithLogger sets the logger for registration debug lines. Defaults to
// a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an App.
func New(opts ...Option) *App {
	a := &App{
		title:    "Frappe API",
		version:  "0.1.0",
		registry: route.NewRegistry(),
		logger:   noopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the app's ordered route registry. This is the
// surface the dispatch interceptor consults.
func (a *App) Registry() *route.Registry {
	return a.registry
}

// Title returns the API title.
func (a *App) Title() string {
	return a.title
}

// Version returns the API version.
func (a *App) Version() string {
	return a.version
}

// ApplyWhitelist attaches the allower and forwards every dotted-path
// endpoint registered so far. Endpoints registered afterwards forward
// as they arrive. Use it when the host is constructed after the app's
// init-time registrations.
func (a *App) ApplyWhitelist(allower host.Allower) {
	if allower == nil {
		return
	}

	a.mu.Lock()
	a.allower = allower
	eps := make([]endpoint, len(a.endpoints))
	copy(eps, a.endpoints)
	a.mu.Unlock()

	for _, ep := range eps {
		allower.Allow(ep.name, ep.fn, ep.verbs, ep.guest)
	}
}

// allow records a dotted-path endpoint and forwards it to the attached
// allower, if any.
func (a *App) allow(name string, handler route.Handler, verbs []string, guest bool) {
	ep := endpoint{name: name, fn: handler.Invoke, verbs: verbs, guest: guest}

	a.mu.Lock()
	a.endpoints = append(a.endpoints, ep)
	allower := a.allower
	a.mu.Unlock()

	if allower != nil {
		allower.Allow(ep.name, ep.fn, ep.verbs, ep.guest)
	}
	a.logger.Debug("method whitelisted", "name", name, "verbs", verbs, "allow_guest", guest)
}

// OnException registers a handler for errors matching target under
// errors.Is. The dispatch layer still propagates such errors verbatim;
// only the host's serialization consults this table, through the
// formatter ErrorFormatter builds. First registered match wins.
func (a *App) OnException(target error, h ExceptionHandler) {
	if target == nil || h == nil {
		return
	}
	a.OnExceptionFunc(func(err error) bool {
		return stderrors.Is(err, target)
	}, h)
}

// OnExceptionFunc registers a handler gated by a predicate, for error
// families a single sentinel cannot describe.
func (a *App) OnExceptionFunc(match func(error) bool, h ExceptionHandler) {
	if match == nil || h == nil {
		return
	}
	a.mu.Lock()
	a.excHandlers = append(a.excHandlers, excEntry{match: match, handler: h})
	a.mu.Unlock()
}

// exceptionHandler returns the first registered handler matching err.
func (a *App) exceptionHandler(err error) (ExceptionHandler, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, e := range a.excHandlers {
		if e.match(err) {
			return e.handler, true
		}
	}
	return nil, false
}

// ErrorFormatter wraps next with the app's exception handler table:
// errors with a registered handler serialize through it, everything
// else through next. A nil next falls back to the legacy formatter.
//
//	host.New(dispatcher, host.WithFormatter(app.ErrorFormatter(nil)))
func (a *App) ErrorFormatter(next errors.Formatter) errors.Formatter {
	if next == nil {
		next = errors.NewLegacy()
	}
	return appFormatter{app: a, next: next}
}

type appFormatter struct {
	app  *App
	next errors.Formatter
}

func (f appFormatter) Format(req *http.Request, err error) errors.Response {
	if h, ok := f.app.exceptionHandler(err); ok {
		return h(req, err)
	}
	return f.next.Format(req, err)
}

// Description is the app's introspection snapshot: the API document
// identity plus every documented route. External documentation
// assemblers consume it; the engine itself never reads it back.
type Description struct {
	Title          string       `yaml:"title" json:"title"`
	Version        string       `yaml:"version" json:"version"`
	OpenAPIVersion string       `yaml:"openapi_version" json:"openapi_version"`
	Summary        string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description    string       `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string       `yaml:"terms_of_service,omitempty" json:"terms_of_service,omitempty"`
	Contact        *Contact     `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License     `yaml:"license,omitempty" json:"license,omitempty"`
	Servers        []Server     `yaml:"servers,omitempty" json:"servers,omitempty"`
	Tags           []Tag        `yaml:"tags,omitempty" json:"tags,omitempty"`
	Routes         []route.Info `yaml:"routes" json:"routes"`
}

// Describe returns the introspection snapshot. Hidden routes are
// excluded, matching the registry's Describe.
func (a *App) Describe() Description {
	return Description{
		Title:          a.title,
		Version:        a.version,
		OpenAPIVersion: OpenAPIVersion,
		Summary:        a.summary,
		Description:    a.description,
		TermsOfService: a.termsOfService,
		Contact:        a.contact,
		License:        a.license,
		Servers:        a.servers,
		Tags:           a.tags,
		Routes:         a.registry.Describe(),
	}
}

// DescribeYAML renders the introspection snapshot as YAML.
func (a *App) DescribeYAML() ([]byte, error) {
	return yaml.Marshal(a.Describe())
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
