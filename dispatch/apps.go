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
	"sync"

	"github.com/i404788/frappeapi/route"
)

// Application is the surface an application instance exposes to the
// interceptor: an ordered registry of its routes. Anything that owns a
// route.Registry can participate in dispatch.
type Application interface {
	Registry() *route.Registry
}

// AppSet is the explicit, process-visible set of applications the
// interceptor consults. It grows only through Register and never
// shrinks; registration order is the outer precedence order during
// matching. Passing the set into Install by reference replaces the
// hidden module-level lists a framework would otherwise accumulate.
type AppSet struct {
	mu   sync.RWMutex
	apps []Application
}

// NewAppSet creates an empty application set.
func NewAppSet() *AppSet {
	return &AppSet{}
}

// Register appends an application. Nil applications and repeat
// registrations of the same instance are ignored, so an application
// registering itself from several init sites appears once.
func (s *AppSet) Register(app Application) {
	if app == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing == app {
			return
		}
	}
	s.apps = append(s.apps, app)
}

// Apps returns the registered applications in registration order. The
// returned slice is a read-only view.
func (s *AppSet) Apps() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apps[:len(s.apps):len(s.apps)]
}

// Len returns the number of registered applications.
func (s *AppSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.apps)
}
