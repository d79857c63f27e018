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
	"fmt"
	"strings"

	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/logging"
	"github.com/i404788/frappeapi/route"
)

// Interceptor is the installed dispatch wrapper. One Interceptor wraps
// one host cell; Installed reports whether this instance performed the
// transition or arrived after another already had.
type Interceptor struct {
	apps         *AppSet
	logger       logging.Logger
	recorder     Recorder
	apiPrefix    string
	methodPrefix string
	installed    bool
}

// Option configures the interceptor before installation.
type Option func(*Interceptor)

// WithLogger sets the logger for installation and per-dispatch debug
// lines. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(ic *Interceptor) {
		if l != nil {
			ic.logger = l
		}
	}
}

// WithRecorder sets the observability recorder. Defaults to none.
func WithRecorder(r Recorder) Option {
	return func(ic *Interceptor) {
		ic.recorder = r
	}
}

// WithAPIPrefix overrides the reserved API prefix. A trailing slash is
// trimmed so the segment-boundary rule stays intact.
func WithAPIPrefix(prefix string) Option {
	return func(ic *Interceptor) {
		ic.apiPrefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithMethodPrefix overrides the dotted-method prefix. A trailing
// slash is appended when missing.
func WithMethodPrefix(prefix string) Option {
	return func(ic *Interceptor) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		ic.methodPrefix = prefix
	}
}

// Install wraps the host's dispatcher with the hybrid route
// interceptor. The cell performs the transition at most once: the
// first call installs and later calls are silent no-ops whose returned
// Interceptor reports Installed() == false while the existing chain
// keeps serving. The original dispatcher is retained inside the cell
// and remains the fallback for every request that matches no route.
//
// Applications registered into the set after installation are picked
// up on the next request; the set is consulted live.
func Install(h *host.Host, apps *AppSet, opts ...Option) (*Interceptor, error) {
	if h == nil {
		return nil, ErrNilHost
	}
	if apps == nil {
		return nil, ErrNilAppSet
	}

	ic := &Interceptor{
		apps:         apps,
		logger:       noopLogger{},
		apiPrefix:    DefaultAPIPrefix,
		methodPrefix: DefaultMethodPrefix,
	}
	for _, opt := range opts {
		opt(ic)
	}

	if !strings.HasPrefix(ic.methodPrefix, ic.apiPrefix+"/") {
		return nil, fmt.Errorf("%w: api %q, method %q", ErrPrefixMismatch, ic.apiPrefix, ic.methodPrefix)
	}

	ic.installed = h.Cell().Intercept(ic.wrap)
	if ic.installed {
		ic.logger.Info("route interceptor installed",
			"apps", apps.Len(),
			"api_prefix", ic.apiPrefix,
			"method_prefix", ic.methodPrefix,
		)
	} else {
		ic.logger.Debug("route interceptor already installed, keeping existing chain")
	}
	return ic, nil
}

// MustInstall is like Install but panics on error. Double installation
// is not an error and does not panic.
func MustInstall(h *host.Host, apps *AppSet, opts ...Option) *Interceptor {
	ic, err := Install(h, apps, opts...)
	if err != nil {
		panic(fmt.Sprintf("dispatch: failed to install interceptor: %v", err))
	}
	return ic
}

// Installed reports whether this Interceptor performed the cell
// transition. False means another interceptor was already in place and
// this instance is inert.
func (ic *Interceptor) Installed() bool {
	return ic.installed
}

// Apps returns the application set the interceptor consults.
func (ic *Interceptor) Apps() *AppSet {
	return ic.apps
}

// wrap builds the dispatch function stored in the cell. original is
// the host's retained legacy dispatcher.
func (ic *Interceptor) wrap(original host.DispatchFunc) host.DispatchFunc {
	return func(c *host.Context) (any, error) {
		return ic.dispatch(c, original)
	}
}

// dispatch runs the per-request state machine: normalize the path, try
// every route in precedence order, first full match wins, everything
// else falls back to the original dispatcher. Handler and fallback
// errors are returned as-is.
func (ic *Interceptor) dispatch(c *host.Context, original host.DispatchFunc) (any, error) {
	var state any
	if ic.recorder != nil {
		ctx, s := ic.recorder.OnDispatchStart(c)
		c.SetContext(ctx)
		state = s
	}

	path := effectivePath(c.Path(), ic.apiPrefix, ic.methodPrefix)

	partial := false
	for _, app := range ic.apps.Apps() {
		for _, r := range app.Registry().Routes() {
			params, match := r.Match(c.Method(), path)
			switch match {
			case route.MatchFull:
				c.MergeForm(params)
				if status := r.StatusCode(); status != 0 {
					c.SetResponseStatus(status)
				}
				result, err := r.Invoke(c)
				ic.logger.Debug("dispatch",
					"method", c.Method(),
					"path", c.Path(),
					"outcome", OutcomeRouted.String(),
					"route", r.Pattern(),
				)
				if ic.recorder != nil && state != nil {
					ic.recorder.OnDispatchEnd(c, state, OutcomeRouted, r, err)
				}
				return result, err
			case route.MatchPartial:
				partial = true
			}
		}
	}

	outcome := OutcomeFallback
	if partial {
		outcome = OutcomeFallbackPartial
	}
	result, err := original(c)
	ic.logger.Debug("dispatch",
		"method", c.Method(),
		"path", c.Path(),
		"outcome", outcome.String(),
	)
	if ic.recorder != nil && state != nil {
		ic.recorder.OnDispatchEnd(c, state, outcome, nil, err)
	}
	return result, err
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
