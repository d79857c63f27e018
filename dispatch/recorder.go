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
	"context"

	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/route"
)

// Outcome classifies how one pass through the interceptor concluded.
type Outcome uint8

const (
	// OutcomeRouted means a template route matched fully and its
	// handler produced the dispatch result.
	OutcomeRouted Outcome = iota

	// OutcomeFallback means no route matched and the original
	// dispatcher produced the result.
	OutcomeFallback

	// OutcomeFallbackPartial is OutcomeFallback where at least one
	// route matched the path but not the verb. The legacy dispatcher
	// still ran; the distinction exists only for observability.
	OutcomeFallbackPartial
)

// String returns the outcome label used in logs and metric attributes.
func (o Outcome) String() string {
	switch o {
	case OutcomeRouted:
		return "routed"
	case OutcomeFallback:
		return "fallback"
	case OutcomeFallbackPartial:
		return "fallback_partial"
	default:
		return "unknown"
	}
}

// Recorder receives dispatch lifecycle hooks. Implementations combine
// metrics, tracing, and access logging; the interceptor treats the
// state token as opaque and skips OnDispatchEnd when it is nil.
//
// All methods must be safe for concurrent use.
type Recorder interface {
	// OnDispatchStart is called before path normalization. The
	// returned context replaces the dispatch context for the rest of
	// the request, so span propagation reaches handlers and the
	// legacy dispatcher alike; it is applied even when the returned
	// state is nil. A nil state excludes the request from
	// OnDispatchEnd.
	OnDispatchStart(c *host.Context) (context.Context, any)

	// OnDispatchEnd is called after the dispatch result is known.
	// matched is the winning route for OutcomeRouted and nil
	// otherwise. err is whatever the handler or the original
	// dispatcher returned; the interceptor has not altered it.
	OnDispatchEnd(c *host.Context, state any, outcome Outcome, matched *route.Route, err error)
}
