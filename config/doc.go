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

// Package config loads layered configuration for the dispatch host.
//
// Sources register in precedence order: values from a later source
// override values from an earlier one, so the usual stack is literal
// defaults, then a file, then environment variables. Loaded values
// are available through case-insensitive dot-path getters
// (cfg.String("log.level")), through struct binding, or through the
// engine's own Settings schema via LoadSettings.
//
//	settings, err := config.LoadSettings(ctx,
//	    config.WithFile("frappeapi.yaml"),
//	    config.WithEnv("FRAPPE_"),
//	)
//
// A JSON-schema document can validate the merged values before they
// are exposed; Settings ships with one covering the engine's keys.
package config
