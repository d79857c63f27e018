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

	"github.com/google/uuid"

	"github.com/i404788/frappeapi/errors"
)

// Static errors for binding operations.
var (
	// ErrMissingParam is returned when a required parameter is absent
	// from the namespace.
	ErrMissingParam = stderrors.New("missing parameter")

	// ErrInvalidUUIDFormat is returned when a value cannot be parsed as
	// a UUID.
	ErrInvalidUUIDFormat = stderrors.New("invalid UUID format")

	// ErrNotStruct is returned when the Bind type parameter is not a
	// struct.
	ErrNotStruct = stderrors.New("binding target must be a struct")
)

// BindError represents a binding failure with field-level context: which
// parameter failed, the value that was provided, and the type it could
// not become.
//
// Use [errors.As] to inspect the context:
//
//	var bindErr *binding.BindError
//	if errors.As(err, &bindErr) {
//	    fmt.Printf("field %s: %s\n", bindErr.Field, bindErr.Reason)
//	}
type BindError struct {
	Field  string       // Parameter name that failed binding
	Value  any          // The value that failed conversion
	Type   reflect.Type // Expected Go type
	Reason string       // Human-readable reason for failure
	Err    error        // Underlying error
}

// Error returns a formatted message with contextual hints.
func (e *BindError) Error() string {
	base := "binding"
	if e.Field != "" {
		base = fmt.Sprintf("binding field %q", e.Field)
	}

	switch {
	case e.Reason != "":
		base += ": " + e.Reason
	case e.Type != nil:
		base += fmt.Sprintf(": cannot convert %q to %s", fmt.Sprint(e.Value), e.Type.String())
		if e.Err != nil {
			base += ": " + e.Err.Error()
		}
	case e.Err != nil:
		base += ": " + e.Err.Error()
	}

	if hint := e.hint(); hint != "" {
		base += " (hint: " + hint + ")"
	}

	return base
}

// hint suggests a fix for common parameter mistakes based on the type
// that failed to bind.
func (e *BindError) hint() string {
	if e.Type == nil {
		return ""
	}

	if isIntKind(e.Type.Kind()) && strings.Contains(fmt.Sprint(e.Value), ".") {
		return "use a float type for decimal values"
	}

	if e.Type.Kind() == reflect.Bool {
		return "accepted values: true/false or 1/0"
	}

	if e.Type == reflect.TypeFor[uuid.UUID]() {
		return "use the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form"
	}

	return ""
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *BindError) Unwrap() error {
	return e.Err
}

// Is reports binding failures as invalid-argument errors so the
// serialization layer maps them to status 400.
func (e *BindError) Is(target error) bool {
	return target == errors.ErrInvalidArgument
}

// isIntKind returns true for any integer kind, signed or unsigned.
func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// FieldViolation records one validation rule a bound struct field broke.
type FieldViolation struct {
	Field string `json:"field"`           // Parameter name (form tag)
	Rule  string `json:"rule"`            // Validator tag that failed
	Param string `json:"param,omitempty"` // Tag parameter, e.g. "0" for gte=0
	Value any    `json:"value,omitempty"` // The offending value
}

// Message returns the human-readable form of the violation.
func (v FieldViolation) Message() string {
	switch {
	case v.Rule == "required":
		return v.Field + " is required"
	case v.Param != "":
		return fmt.Sprintf("%s failed %s=%s", v.Field, v.Rule, v.Param)
	default:
		return fmt.Sprintf("%s failed %s", v.Field, v.Rule)
	}
}

// ValidationError collects the rule violations of one Bind call.
//
// It implements the errors package's ErrorDetails interface, so the
// legacy formatter carries the per-field messages as _server_messages
// and the JSON:API formatter emits one error object per violation.
type ValidationError struct {
	Fields []FieldViolation
}

// Error returns the single violation message, or all messages joined.
func (e *ValidationError) Error() string {
	msgs := e.messages()
	switch len(msgs) {
	case 0:
		return "validation failed"
	case 1:
		return msgs[0]
	default:
		return "validation failed: " + strings.Join(msgs, "; ")
	}
}

// Is reports validation failures as invalid-argument errors.
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrInvalidArgument
}

// Details returns the violation messages for the error formatters.
func (e *ValidationError) Details() any {
	return e.messages()
}

func (e *ValidationError) messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message())
	}
	return msgs
}
