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
	"sync"
	"sync/atomic"
)

// DispatchFunc handles one request and returns the dispatch result.
// Errors propagate to the caller unmodified so the host's rollback and
// error serialization observe the original error identity.
type DispatchFunc func(c *Context) (any, error)

// Cell is the host's dispatch slot: a singly-settable indirection
// holding the active dispatch function and the original one. The host
// starts with active == original; an interceptor may wrap the original
// exactly once per Cell. The original remains retained and callable for
// the life of the process.
//
// Thread-safety:
//   - Dispatch reads the active function through an atomic pointer, so
//     the hot path takes no lock
//   - Intercept serializes through a mutex and flips an atomic flag,
//     making the uninstalled→installed transition one-shot
type Cell struct {
	mu        sync.Mutex
	installed atomic.Bool
	active    atomic.Pointer[DispatchFunc]
	original  DispatchFunc
}

// NewCell creates a dispatch cell around the host's original dispatcher.
// Returns ErrNilDispatcher if original is nil.
func NewCell(original DispatchFunc) (*Cell, error) {
	if original == nil {
		return nil, ErrNilDispatcher
	}

	c := &Cell{original: original}
	c.active.Store(&original)
	return c, nil
}

// MustNewCell creates a dispatch cell or panics on error.
func MustNewCell(original DispatchFunc) *Cell {
	c, err := NewCell(original)
	if err != nil {
		panic("host: " + err.Error())
	}
	return c
}

// Dispatch routes one request through the active dispatch function.
func (c *Cell) Dispatch(ctx *Context) (any, error) {
	return (*c.active.Load())(ctx)
}

// Original returns the host's original dispatch function. It stays
// callable regardless of interception, which is what makes fallback
// behavior byte-identical to the pre-interception host.
func (c *Cell) Original() DispatchFunc {
	return c.original
}

// Intercept installs a wrapper around the original dispatcher. The wrap
// function receives the original and returns the replacement that will
// serve as the active dispatcher.
//
// The transition is one-shot: the first successful call returns true
// and every later call returns false without touching the cell. A nil
// wrap, or a wrap returning nil, also returns false and does not
// consume the one-shot transition.
func (c *Cell) Intercept(wrap func(original DispatchFunc) DispatchFunc) bool {
	if wrap == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.installed.Load() {
		return false
	}

	next := wrap(c.original)
	if next == nil {
		return false
	}

	c.active.Store(&next)
	c.installed.Store(true)
	return true
}

// Intercepted reports whether a wrapper has been installed.
func (c *Cell) Intercepted() bool {
	return c.installed.Load()
}
