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

// Package telemetry records dispatch outcomes as OpenTelemetry metrics
// and traces.
//
// Recorder implements dispatch.Recorder: every pass through the
// interceptor becomes one span plus one observation in the dispatch
// counter and duration histogram, labeled by outcome, verb, and the
// matched route pattern (never the raw path, which would explode
// cardinality).
//
// By default metrics are exported through a package-owned Prometheus
// registry; Handler returns the scrape endpoint to mount. Traces use
// the ambient OpenTelemetry tracer provider unless one is supplied,
// so processes that already manage their own providers can plug them
// in with WithTracerProvider and WithMeterProvider. Shutdown only
// stops what the package created: user-supplied providers stay up.
package telemetry
