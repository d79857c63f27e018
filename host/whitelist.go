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
	"sort"
	"strings"
	"sync"
)

// Allower is the host's whitelisting hook. Application-level
// registration forwards each endpoint's dotted name, handler, accepted
// verbs, and guest flag here; the host enforces the whitelist on its
// legacy dispatch path only. Template-routed requests never consult it.
type Allower interface {
	Allow(name string, fn DispatchFunc, verbs []string, allowGuest bool)
}

// Method is one whitelisted dotted-path endpoint.
type Method struct {
	fn         DispatchFunc
	verbs      map[string]struct{}
	allowGuest bool
}

// Allows reports whether the method accepts the verb. An endpoint
// registered without verbs accepts any.
func (m Method) Allows(verb string) bool {
	if len(m.verbs) == 0 {
		return true
	}
	_, ok := m.verbs[strings.ToUpper(verb)]
	return ok
}

// AllowGuest reports whether unauthenticated sessions may call the
// method.
func (m Method) AllowGuest() bool {
	return m.allowGuest
}

// Whitelist is the host's table of callable dotted-path methods. Only
// names present here are reachable through the legacy dispatcher;
// everything else resolves to a not-found error regardless of what
// functions exist in the process.
type Whitelist struct {
	mu      sync.RWMutex
	methods map[string]Method
}

// NewWhitelist creates an empty whitelist.
func NewWhitelist() *Whitelist {
	return &Whitelist{methods: make(map[string]Method)}
}

// Allow registers a dotted-path method. Registering a name again
// replaces the previous entry. Empty names and nil handlers are
// ignored. Verbs are upper-cased; an empty verb list means any verb.
func (w *Whitelist) Allow(name string, fn DispatchFunc, verbs []string, allowGuest bool) {
	if name == "" || fn == nil {
		return
	}
	m := Method{fn: fn, allowGuest: allowGuest}
	if len(verbs) > 0 {
		m.verbs = make(map[string]struct{}, len(verbs))
		for _, v := range verbs {
			v = strings.ToUpper(strings.TrimSpace(v))
			if v != "" {
				m.verbs[v] = struct{}{}
			}
		}
	}
	w.mu.Lock()
	w.methods[name] = m
	w.mu.Unlock()
}

// Resolve looks up a dotted name.
func (w *Whitelist) Resolve(name string) (Method, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	m, ok := w.methods[name]
	return m, ok
}

// Names returns the whitelisted dotted names, sorted.
func (w *Whitelist) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.methods))
	for name := range w.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of whitelisted methods.
func (w *Whitelist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.methods)
}
