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

// Package logging provides structured logging built on log/slog.
//
// The package wraps slog with handler selection (JSON, text, colored
// console), level management, sensitive-field redaction, sampling for
// high-traffic paths, and OpenTelemetry trace correlation. The dispatch
// layer logs every routing decision through this package, so sampling
// keeps per-request debug output affordable in production.
//
// # Quick Start
//
//	logger, err := logging.New(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("frappeapi"),
//	    logging.WithLevel(logging.LevelInfo),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Shutdown(context.Background())
//
//	logger.Info("interceptor installed", "routes", 12)
//
// # Sampling
//
// High-traffic deployments can sample non-error entries:
//
//	logger, err := logging.New(
//	    logging.WithSampling(logging.SamplingConfig{
//	        Initial:    100,
//	        Thereafter: 100,
//	        Tick:       time.Minute,
//	    }),
//	)
//
// Errors always bypass sampling.
//
// # Trace Correlation
//
// Wrap a request context to stamp trace_id/span_id on every entry:
//
//	cl := logging.NewContextLogger(ctx, logger)
//	cl.Info("route matched", "pattern", "/items/{id:int}")
package logging
