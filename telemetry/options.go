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
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Recorder during construction.
type Option func(*Recorder)

// WithServiceName sets the service.name attribute on every span and
// metric observation.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service.version attribute.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithTracerProvider uses the given tracer provider instead of the
// global one. The caller keeps ownership; Shutdown will not touch it.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Recorder) {
		if tp != nil {
			r.tracerProvider = tp
		}
	}
}

// WithMeterProvider uses the given meter provider instead of the
// package-owned Prometheus pipeline. Handler returns nil in this mode
// and Shutdown will not touch the provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) {
		if mp != nil {
			r.meterProvider = mp
		}
	}
}

// WithDurationBuckets overrides the dispatch duration histogram
// boundaries.
func WithDurationBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.durationBuckets = buckets
		}
	}
}

// WithDisabled builds the recorder but observes nothing. Useful when
// the toggle lives in configuration and callers want one code path.
func WithDisabled() Option {
	return func(r *Recorder) {
		r.enabled = false
	}
}
