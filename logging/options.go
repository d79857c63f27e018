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

package logging

import (
	"io"
	"log/slog"
)

// WithHandlerType sets the logging handler type.
func WithHandlerType(t HandlerType) Option {
	return func(c *Config) { c.handlerType = t }
}

// WithJSONHandler uses JSON structured logging (default).
func WithJSONHandler() Option {
	return WithHandlerType(JSONHandler)
}

// WithTextHandler uses text key=value logging.
func WithTextHandler() Option {
	return WithHandlerType(TextHandler)
}

// WithConsoleHandler uses human-readable console logging.
func WithConsoleHandler() Option {
	return WithHandlerType(ConsoleHandler)
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.output = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c *Config) { c.level = level }
}

// WithDebugLevel enables debug logging.
func WithDebugLevel() Option {
	return WithLevel(LevelDebug)
}

// WithServiceName sets the service name.
func WithServiceName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.serviceName = name
		}
	}
}

// WithServiceVersion sets the service version.
func WithServiceVersion(version string) Option {
	return func(c *Config) {
		if version != "" {
			c.serviceVersion = version
		}
	}
}

// WithEnvironment sets the environment.
func WithEnvironment(env string) Option {
	return func(c *Config) {
		if env != "" {
			c.environment = env
		}
	}
}

// WithSource enables source code location in logs.
func WithSource(enabled bool) Option {
	return func(c *Config) { c.addSource = enabled }
}

// WithReplaceAttr sets a custom attribute replacer function.
// The function receives groups and an [slog.Attr], and returns a modified attribute.
// Return an empty [slog.Attr] to drop the attribute from output.
func WithReplaceAttr(fn func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(c *Config) { c.replaceAttr = fn }
}

// WithCustomLogger uses a custom [slog.Logger] instead of creating one.
// When using a custom logger, [Config.SetLevel] is not supported.
func WithCustomLogger(customLogger *slog.Logger) Option {
	return func(c *Config) {
		c.customLogger = customLogger
		c.useCustom = true
	}
}

// WithGlobalLogger registers this logger as the global slog default logger.
// By default, loggers are not registered globally to allow multiple logger
// instances to coexist in the same process.
//
// Example:
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithGlobalLogger(), // Register as global default
//	)
func WithGlobalLogger() Option {
	return func(c *Config) {
		c.registerGlobal = true
	}
}

// WithSampling enables log sampling to reduce volume in high-traffic scenarios.
// See [SamplingConfig] for configuration options.
func WithSampling(cfg SamplingConfig) Option {
	return func(c *Config) {
		c.samplingConfig = &cfg
	}
}
