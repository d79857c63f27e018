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
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// scopeName identifies this instrumentation to meter and tracer
// providers.
const scopeName = "github.com/i404788/frappeapi/telemetry"

// DefaultDurationBuckets are histogram boundaries for dispatch
// duration in seconds, covering sub-millisecond matching through slow
// handlers.
var DefaultDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Recorder holds the dispatch instrumentation. All methods are safe
// for concurrent use.
//
// The zero value is not usable; construct with New or MustNew.
type Recorder struct {
	serviceName    string
	serviceVersion string
	enabled        bool

	tracerProvider trace.TracerProvider
	tracer         trace.Tracer

	meterProvider      metric.MeterProvider
	ownedMeterProvider *sdkmetric.MeterProvider
	prometheusHandler  http.Handler

	dispatchCount    metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	dispatchErrors   metric.Int64Counter

	durationBuckets []float64

	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue
}

// New creates a Recorder with the given options. Without
// WithMeterProvider it builds a private Prometheus registry and
// exposes it through Handler; without WithTracerProvider it uses the
// global OpenTelemetry tracer provider, which is a no-op unless the
// process configured one.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:     "frappeapi",
		serviceVersion:  "0.1.0",
		enabled:         true,
		durationBuckets: DefaultDurationBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.serviceName == "" {
		return nil, fmt.Errorf("service name cannot be empty")
	}
	if r.serviceVersion == "" {
		return nil, fmt.Errorf("service version cannot be empty")
	}
	r.serviceNameAttr = attribute.String("service.name", r.serviceName)
	r.serviceVersionAttr = attribute.String("service.version", r.serviceVersion)

	if err := r.initialize(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("telemetry: failed to create recorder: %v", err))
	}
	return r
}

func (r *Recorder) initialize() error {
	if r.tracerProvider == nil {
		r.tracerProvider = otel.GetTracerProvider()
	}
	r.tracer = r.tracerProvider.Tracer(scopeName)

	if r.meterProvider == nil {
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.ownedMeterProvider = provider
		r.meterProvider = provider
		r.prometheusHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	meter := r.meterProvider.Meter(scopeName)

	var err error
	r.dispatchCount, err = meter.Int64Counter(
		"dispatch_requests_total",
		metric.WithDescription("Total dispatch attempts by outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch counter: %w", err)
	}

	r.dispatchDuration, err = meter.Float64Histogram(
		"dispatch_duration_seconds",
		metric.WithDescription("Duration of dispatch passes in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch duration histogram: %w", err)
	}

	r.dispatchErrors, err = meter.Int64Counter(
		"dispatch_errors_total",
		metric.WithDescription("Total dispatch results carrying an error"),
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch error counter: %w", err)
	}

	return nil
}

// Handler returns the Prometheus scrape handler for the package-owned
// registry, or nil when a custom meter provider is in use (the caller
// then owns exposition).
func (r *Recorder) Handler() http.Handler {
	return r.prometheusHandler
}

// Enabled reports whether the recorder observes dispatches.
func (r *Recorder) Enabled() bool {
	return r.enabled
}

// ServiceName returns the configured service name.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// Shutdown flushes and stops the meter provider the recorder created.
// Providers supplied by the caller are left running; the caller
// manages their lifecycle.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.ownedMeterProvider == nil {
		return nil
	}
	if err := r.ownedMeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down meter provider: %w", err)
	}
	return nil
}
