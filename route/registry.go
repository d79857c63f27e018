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
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry is an ordered, append-only collection of routes. Insertion
// order is match precedence: the first full match wins. Duplicate
// registrations are allowed and resolved by that precedence, so
// re-declaring a pattern shadows nothing and breaks nothing.
//
// Registration normally completes before serving traffic, but Add and
// Routes are mutex-guarded so late registration under concurrent
// dispatch stays safe.
type Registry struct {
	mu     sync.RWMutex
	routes []*Route
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a route. Nil routes are ignored.
func (g *Registry) Add(r *Route) {
	if r == nil {
		return
	}
	g.mu.Lock()
	g.routes = append(g.routes, r)
	g.mu.Unlock()
}

// Routes returns the registered routes in precedence order. The
// returned slice is a read-only view; callers must not modify it.
// Because the registry is append-only, the view stays valid while new
// routes are added.
func (g *Registry) Routes() []*Route {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.routes[:len(g.routes):len(g.routes)]
}

// Len returns the number of registered routes.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.routes)
}

// Info is the exportable description of one route, used for
// documentation and operational introspection.
type Info struct {
	Name         string            `yaml:"name" json:"name"`
	Path         string            `yaml:"path" json:"path"`
	Methods      []string          `yaml:"methods" json:"methods"`
	Summary      string            `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Tags         []string          `yaml:"tags,omitempty" json:"tags,omitempty"`
	Params       map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	AllowGuest   bool              `yaml:"allow_guest" json:"allow_guest"`
	StatusCode   int               `yaml:"status_code,omitempty" json:"status_code,omitempty"`
	ResponseDesc string            `yaml:"response_description,omitempty" json:"response_description,omitempty"`
	ContentType  string            `yaml:"content_type,omitempty" json:"content_type,omitempty"`
}

// Describe returns Info for every documented route, in precedence
// order. Hidden routes are skipped.
func (g *Registry) Describe() []Info {
	routes := g.Routes()

	infos := make([]Info, 0, len(routes))
	for _, r := range routes {
		if r.Hidden() {
			continue
		}
		infos = append(infos, Info{
			Name:         r.Name(),
			Path:         r.Pattern(),
			Methods:      r.Methods(),
			Summary:      r.Summary(),
			Description:  r.Description(),
			Tags:         r.Tags(),
			Params:       r.Template().Converters(),
			AllowGuest:   r.AllowGuest(),
			StatusCode:   r.StatusCode(),
			ResponseDesc: r.ResponseDescription(),
			ContentType:  r.ContentType(),
		})
	}
	return infos
}

// DescribeYAML renders Describe output as YAML, the format the
// operational tooling consumes.
func (g *Registry) DescribeYAML() ([]byte, error) {
	return yaml.Marshal(g.Describe())
}
