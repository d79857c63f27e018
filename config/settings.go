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

package config

import (
	"context"
	"strings"

	"github.com/i404788/frappeapi/errors"
	"github.com/i404788/frappeapi/logging"
)

// Settings is the dispatch host's own configuration schema: where to
// listen, how paths map onto the two dispatch conventions, how errors
// serialize, and how chatty the process is.
type Settings struct {
	// Listen is the HTTP listen address, e.g. ":8000".
	Listen string `config:"listen"`

	// APIPrefix is the prefix stripped before template matching.
	APIPrefix string `config:"api_prefix"`

	// MethodPrefix is the dotted-path namespace left untouched by
	// template matching. Must sit under APIPrefix.
	MethodPrefix string `config:"method_prefix"`

	// ErrorFormat selects the error response shape: legacy, simple,
	// problem, or jsonapi.
	ErrorFormat string `config:"error_format"`

	// ProblemBase prefixes problem type slugs when ErrorFormat is
	// "problem".
	ProblemBase string `config:"problem_base"`

	// Banner toggles the startup banner.
	Banner bool `config:"banner"`

	Log       LogSettings       `config:"log"`
	Telemetry TelemetrySettings `config:"telemetry"`
}

// LogSettings selects the process logger.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `config:"level"`

	// Format is one of json, text, console.
	Format string `config:"format"`
}

// TelemetrySettings toggles the dispatch observability recorder.
type TelemetrySettings struct {
	// Enabled turns the span and metrics recorder on.
	Enabled bool `config:"enabled"`

	// ServiceName labels spans and metric series.
	ServiceName string `config:"service_name"`

	// MetricsPath is where the demo host mounts the Prometheus
	// scrape handler.
	MetricsPath string `config:"metrics_path"`
}

// DefaultSettings returns the settings used when no source overrides
// them.
func DefaultSettings() Settings {
	return Settings{
		Listen:       ":8000",
		APIPrefix:    "/api",
		MethodPrefix: "/api/method/",
		ErrorFormat:  "legacy",
		Banner:       true,
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetrySettings{
			Enabled:     true,
			ServiceName: "frappeapi",
			MetricsPath: "/metrics",
		},
	}
}

// settingsDefaults is DefaultSettings as a source layer, so file and
// environment values override per-key instead of per-struct.
func settingsDefaults() map[string]any {
	return map[string]any{
		"listen":        ":8000",
		"api_prefix":    "/api",
		"method_prefix": "/api/method/",
		"error_format":  "legacy",
		"banner":        true,
		"log": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"telemetry": map[string]any{
			"enabled":      true,
			"service_name": "frappeapi",
			"metrics_path": "/metrics",
		},
	}
}

// settingsSchema validates merged values before they bind. Boolean
// keys also admit strings because environment variables always load
// as strings.
const settingsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "listen": {"type": "string", "minLength": 1},
    "api_prefix": {"type": "string", "pattern": "^/"},
    "method_prefix": {"type": "string", "pattern": "^/"},
    "error_format": {"enum": ["legacy", "simple", "problem", "jsonapi"]},
    "problem_base": {"type": "string"},
    "banner": {"type": ["boolean", "string"]},
    "log": {
      "type": "object",
      "properties": {
        "level": {"enum": ["debug", "info", "warn", "error"]},
        "format": {"enum": ["json", "text", "console"]}
      }
    },
    "telemetry": {
      "type": "object",
      "properties": {
        "enabled": {"type": ["boolean", "string"]},
        "service_name": {"type": "string", "minLength": 1},
        "metrics_path": {"type": "string", "pattern": "^/"}
      }
    }
  }
}`

// LoadSettings loads Settings through the layered loader: defaults
// first, then whatever sources the options add, schema-validated and
// bound in one pass.
//
//	settings, err := config.LoadSettings(ctx,
//	    config.WithFile("frappeapi.yaml"),
//	    config.WithEnv("FRAPPE_"),
//	)
func LoadSettings(ctx context.Context, opts ...Option) (*Settings, error) {
	s := DefaultSettings()

	all := append([]Option{
		WithValues(settingsDefaults()),
		WithJSONSchema([]byte(settingsSchema)),
		WithBinding(&s),
	}, opts...)

	cfg, err := New(all...)
	if err != nil {
		return nil, err
	}

	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}

	return &s, nil
}

// Formatter returns the error formatter the settings select. Unknown
// names fall back to the legacy shape, matching what dotted-path
// clients already parse.
func (s Settings) Formatter() errors.Formatter {
	switch strings.ToLower(s.ErrorFormat) {
	case "simple":
		return errors.NewSimple()
	case "problem":
		return errors.NewProblem(s.ProblemBase)
	case "jsonapi":
		return errors.NewJSONAPI()
	default:
		return errors.NewLegacy()
	}
}

// LoggerOptions translates the log settings into logging options.
func (s Settings) LoggerOptions() []logging.Option {
	opts := []logging.Option{}

	switch strings.ToLower(s.Log.Format) {
	case "json":
		opts = append(opts, logging.WithJSONHandler())
	case "console":
		opts = append(opts, logging.WithConsoleHandler())
	default:
		opts = append(opts, logging.WithTextHandler())
	}

	switch strings.ToLower(s.Log.Level) {
	case "debug":
		opts = append(opts, logging.WithLevel(logging.LevelDebug))
	case "warn":
		opts = append(opts, logging.WithLevel(logging.LevelWarn))
	case "error":
		opts = append(opts, logging.WithLevel(logging.LevelError))
	default:
		opts = append(opts, logging.WithLevel(logging.LevelInfo))
	}

	return opts
}
