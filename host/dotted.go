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
	"fmt"
	"strings"

	"github.com/i404788/frappeapi/errors"
)

// DefaultDottedPrefix addresses whitelisted methods by fully qualified
// name, e.g. /api/method/myapp.api.get_item.
const DefaultDottedPrefix = "/api/method/"

// DottedOption configures the dotted-method dispatcher.
type DottedOption func(*dottedDispatcher)

// WithDottedPrefix overrides the path prefix methods are served under.
func WithDottedPrefix(prefix string) DottedOption {
	return func(d *dottedDispatcher) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		d.prefix = prefix
	}
}

type dottedDispatcher struct {
	whitelist *Whitelist
	prefix    string
}

// NewDottedDispatcher builds the host's native dispatch function: the
// legacy path that resolves /api/method/<dotted.name> against the
// whitelist, checks verb and guest access, and wraps each successful
// result in the message envelope the convention has always produced.
// A nil whitelist yields a dispatcher that finds nothing, which keeps
// a bare host usable in tests.
//
// This function is the "original" a dispatch interceptor retains: its
// behavior must stay identical whether it is called directly or as the
// interceptor's fallback.
func NewDottedDispatcher(whitelist *Whitelist, opts ...DottedOption) DispatchFunc {
	d := &dottedDispatcher{
		whitelist: whitelist,
		prefix:    DefaultDottedPrefix,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d.dispatch
}

func (d *dottedDispatcher) dispatch(c *Context) (any, error) {
	name, ok := strings.CutPrefix(c.Path(), d.prefix)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: no handler for path %q", errors.ErrMethodNotFound, c.Path())
	}

	m, ok := d.resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, name)
	}
	if !m.Allows(c.Method()) {
		return nil, fmt.Errorf("%w: %s does not accept %s", errors.ErrMethodNotAllowed, name, c.Method())
	}
	if c.Guest() && !m.AllowGuest() {
		return nil, fmt.Errorf("%w: %s is not available to guests", errors.ErrNotPermitted, name)
	}

	result, err := m.fn(c)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return map[string]any{}, nil
	}
	return map[string]any{"message": result}, nil
}

func (d *dottedDispatcher) resolve(name string) (Method, bool) {
	if d.whitelist == nil {
		return Method{}, false
	}
	return d.whitelist.Resolve(name)
}
