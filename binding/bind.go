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

package binding

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"

	"github.com/i404788/frappeapi/host"
)

// defaultTagName is the struct tag naming namespace parameters.
const defaultTagName = "form"

type config struct {
	tagName   string
	validate  bool
	validator *validator.Validate
}

// Option configures a Bind call.
type Option func(*config)

// WithTagName overrides the struct tag used to map namespace keys to
// struct fields. The default is "form".
func WithTagName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.tagName = name
		}
	}
}

// WithoutValidation skips validator tags after decoding.
func WithoutValidation() Option {
	return func(c *config) {
		c.validate = false
	}
}

// WithValidator uses a caller-configured validator instance instead of
// the package default. Useful for custom validation tags.
func WithValidator(v *validator.Validate) Option {
	return func(c *config) {
		if v != nil {
			c.validator = v
		}
	}
}

// Bind decodes the request's parameter namespace into a struct of type
// T and validates it.
//
// Field mapping follows `form` tags. Decoding is weakly typed: the
// namespace mixes strings (query and form fields) with typed values
// (JSON body fields, extracted path parameters), and both coerce into
// the field's declared type. time.Time fields accept RFC 3339 strings,
// time.Duration fields accept Go duration strings, and uuid.UUID
// fields accept canonical UUID strings.
//
// After decoding, `validate` tags run unless WithoutValidation is
// given. Rule violations come back as a *ValidationError carrying one
// FieldViolation per broken rule; decode failures come back as a
// *BindError. Both satisfy errors.Is against errors.ErrInvalidArgument.
func Bind[T any](c *host.Context, opts ...Option) (T, error) {
	var out T

	if kind := reflect.TypeFor[T]().Kind(); kind != reflect.Struct {
		return out, fmt.Errorf("%w: %s", ErrNotStruct, reflect.TypeFor[T]())
	}

	cfg := &config{tagName: defaultTagName, validate: true}
	for _, opt := range opts {
		opt(cfg)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          cfg.tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
			stringToUUIDHookFunc(),
		),
	})
	if err != nil {
		return out, fmt.Errorf("binding: create decoder: %w", err)
	}

	if err := decoder.Decode(c.Form()); err != nil {
		return out, &BindError{Err: fmt.Errorf("cannot decode parameters: %w", err)}
	}

	if cfg.validate {
		if err := cfg.structValidator().Struct(&out); err != nil {
			return out, validationError(err)
		}
	}

	return out, nil
}

// structValidator picks the validator instance for one Bind call.
func (c *config) structValidator() *validator.Validate {
	if c.validator != nil {
		return c.validator
	}
	if c.tagName != defaultTagName {
		return newValidator(c.tagName)
	}
	return lazyValidator()
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *validator.Validate
)

// lazyValidator returns the shared default validator, built on first
// use. The instance is safe for concurrent use.
func lazyValidator() *validator.Validate {
	defaultValidatorOnce.Do(func() {
		defaultValidator = newValidator(defaultTagName)
	})
	return defaultValidator
}

// newValidator builds a validator that reports fields under their
// namespace parameter names rather than Go field names.
func newValidator(tagName string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get(tagName)
		if name == "-" {
			return ""
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// validationError converts validator output into a *ValidationError.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return fmt.Errorf("binding: validate: %w", err)
	}

	verr := &ValidationError{Fields: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldViolation{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}

	return verr
}

// stringToUUIDHookFunc decodes canonical UUID strings into uuid.UUID
// fields.
func stringToUUIDHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[uuid.UUID]() {
			return data, nil
		}

		raw := reflect.ValueOf(data).String()
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUUIDFormat, raw)
		}

		return id, nil
	}
}
