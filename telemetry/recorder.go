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

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/i404788/frappeapi/dispatch"
	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/route"
)

var _ dispatch.Recorder = (*Recorder)(nil)

// fallbackRoute labels observations that the legacy dispatcher served.
// A sentinel keeps label cardinality flat no matter what paths arrive.
const fallbackRoute = "_fallback"

type dispatchState struct {
	span  trace.Span
	start time.Time
}

// OnDispatchStart opens the dispatch span and starts timing. Disabled
// recorders return a nil state, which skips OnDispatchEnd entirely.
func (r *Recorder) OnDispatchStart(c *host.Context) (context.Context, any) {
	if !r.enabled {
		return c.Context(), nil
	}
	ctx, span := r.tracer.Start(c.Context(), "frappeapi.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			r.serviceNameAttr,
			r.serviceVersionAttr,
			attribute.String("http.method", c.Method()),
			attribute.String("url.path", c.Path()),
		),
	)
	return ctx, &dispatchState{span: span, start: time.Now()}
}

// OnDispatchEnd records the outcome on the span and the instruments.
// The error is observed, never altered; it has already been returned
// to the host by the time this runs.
func (r *Recorder) OnDispatchEnd(c *host.Context, state any, outcome dispatch.Outcome, matched *route.Route, err error) {
	ds, ok := state.(*dispatchState)
	if !ok {
		return
	}

	pattern := fallbackRoute
	if matched != nil {
		pattern = matched.Pattern()
	}
	attrs := metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("dispatch.outcome", outcome.String()),
		attribute.String("http.method", c.Method()),
		attribute.String("http.route", pattern),
	)

	ctx := c.Context()
	r.dispatchCount.Add(ctx, 1, attrs)
	r.dispatchDuration.Record(ctx, time.Since(ds.start).Seconds(), attrs)
	if err != nil {
		r.dispatchErrors.Add(ctx, 1, attrs)
	}

	ds.span.SetAttributes(
		attribute.String("dispatch.outcome", outcome.String()),
		attribute.String("http.route", pattern),
	)
	if err != nil {
		ds.span.RecordError(err)
		ds.span.SetStatus(codes.Error, err.Error())
	} else {
		ds.span.SetStatus(codes.Ok, "")
	}
	ds.span.End()
}
