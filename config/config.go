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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/i404788/frappeapi/config/codec"
	"github.com/i404788/frappeapi/config/source"
)

// Source loads one configuration snapshot. Implementations must be
// safe to call concurrently; keys are normalized to lowercase after
// loading, so sources may report keys in any case.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Option configures a Config instance. Options that register sources
// append in call order, and later sources override earlier ones.
type Option func(c *Config) error

// Config manages configuration loaded from layered sources. It
// provides case-insensitive typed access to the merged values and
// optional struct binding and validation.
//
// Config is safe for concurrent use by multiple goroutines.
type Config struct {
	mu         sync.RWMutex
	values     *map[string]any
	sources    []Source
	binding    any
	tagName    string
	schema     *jsonschema.Schema
	validators []func(map[string]any) error

	decoderOnce   sync.Once
	decoderConfig *mapstructure.DecoderConfig
}

// WithSource adds a source.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithValues adds a literal map as a source. Registered first, it
// makes a defaults layer that files and environment override.
func WithValues(values map[string]any) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, staticSource{values: values})
		return nil
	}
}

// WithFile adds a file source, detecting the format from the
// extension (.yaml, .yml, .json, .toml). The path expands ${VAR}
// references against the environment.
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		return WithFileAs(path, format)(c)
	}
}

// WithFileAs adds a file source with an explicit format, for paths
// without a recognizable extension.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithContent adds an in-memory byte slice as a source, decoded with
// the named codec. Useful for embedded configuration.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(c *Config) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}

		c.sources = append(c.sources, source.NewContent(data, decoder))
		return nil
	}
}

// WithEnv adds an environment-variable source for variables starting
// with prefix. FRAPPE_LOG_LEVEL=debug with prefix "FRAPPE_" loads as
// log.level = "debug".
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// WithConsul adds a Consul KV source for the given key path, format
// detected from the path extension. When CONSUL_HTTP_ADDR is unset the
// option is a no-op, so local development runs without a Consul
// cluster while production environments layer one in.
func WithConsul(path string) Option {
	return func(c *Config) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}

		return WithConsulAs(path, format)(c)
	}
}

// WithConsulAs adds a Consul KV source with an explicit format. Unlike
// WithConsul it never skips, so a missing Consul configuration fails
// loudly.
func WithConsulAs(path string, codecType codec.Type) Option {
	return func(c *Config) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("consul-source", "get-decoder", err)
		}

		src, err := source.NewConsul(os.ExpandEnv(path), decoder, nil)
		if err != nil {
			return NewError("consul-source", "create-client", err)
		}

		c.sources = append(c.sources, src)
		return nil
	}
}

// WithBinding decodes the merged values into v on every Load. v must
// be a pointer to a struct tagged with the configured tag name.
func WithBinding(v any) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("binding cannot be nil")
		}
		c.binding = v
		return nil
	}
}

// WithTag overrides the struct tag used for binding. The default is
// "config".
func WithTag(tagName string) Option {
	return func(c *Config) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		c.tagName = tagName
		return nil
	}
}

// WithJSONSchema validates the merged values against a JSON-schema
// document on every Load, before binding sees them.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("inline.json", doc); err != nil {
			return NewError("json-schema", "add-resource", err)
		}

		compiled, err := compiler.Compile("inline.json")
		if err != nil {
			return NewError("json-schema", "compile", err)
		}

		c.schema = compiled
		return nil
	}
}

// WithValidator adds a custom validation function run against the
// merged values on every Load.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		c.validators = append(c.validators, fn)
		return nil
	}
}

// New creates a Config with the given options. Sources do not load
// until Load is called.
func New(options ...Option) (*Config, error) {
	c := &Config{tagName: "config"}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustNew creates a Config or panics. Use in main() where a broken
// configuration setup should halt the program.
func MustNew(options ...Option) *Config {
	c, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config.MustNew: %v", err))
	}
	return c
}

// Load loads every source in registration order, merges with
// later-source precedence, validates, and atomically replaces the
// value snapshot. Load is safe to call concurrently and safe to call
// again to pick up changed files.
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	merged, err := c.loadSources(ctx)
	if err != nil {
		return err
	}

	if c.schema != nil {
		if err := c.schema.Validate(merged); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}

	for i, fn := range c.validators {
		if fn == nil {
			continue
		}
		if err := runValidator(fn, merged); err != nil {
			return NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.binding != nil {
		if err := c.bind(merged); err != nil {
			return NewError("binding", "bind", err)
		}
	}

	c.values = &merged

	return nil
}

// MustLoad loads configuration or panics.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

// Values returns the current merged snapshot. The returned map must be
// treated as read-only.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil {
		return map[string]any{}
	}
	return *c.values
}

// loadSources merges all sources in order with override precedence.
func (c *Config) loadSources(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)

	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}

		if err := mergo.Map(&merged, normalizeKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	return merged, nil
}

// bind decodes the merged values into the registered binding struct.
// Called with c.mu held.
func (c *Config) bind(values map[string]any) error {
	cfg := c.getDecoderConfig()
	cfg.Result = c.binding

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	return nil
}

// getDecoderConfig caches the decoder configuration across Loads.
func (c *Config) getDecoderConfig() *mapstructure.DecoderConfig {
	c.decoderOnce.Do(func() {
		c.decoderConfig = &mapstructure.DecoderConfig{
			TagName:          c.tagName,
			Squash:           true,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
			),
		}
	})
	return c.decoderConfig
}

// normalizeKeys lower-cases keys recursively so lookups and merging
// are case-insensitive regardless of the source's spelling.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[strings.ToLower(k)] = normalizeKeys(nested)
			continue
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// runValidator isolates custom validator panics into errors so a
// broken validator cannot take down loading.
func runValidator(fn func(map[string]any) error, values map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return fn(values)
}

// staticSource serves a literal map, the defaults layer.
type staticSource struct {
	values map[string]any
}

func (s staticSource) Load(context.Context) (map[string]any, error) {
	return s.values, nil
}
