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

package host

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/i404788/frappeapi/errors"
	"github.com/i404788/frappeapi/logging"
)

// maxMultipartMemory bounds in-memory buffering of multipart forms.
const maxMultipartMemory = 10 << 20 // 10 MB

// Host is the request-processing surface that owns the dispatch cell.
// It adapts HTTP requests into dispatch contexts, routes them through
// the cell, and serializes results and errors the way the original
// host always has, so an intercepted process and a plain one are
// indistinguishable for requests no interceptor claims.
type Host struct {
	cell        *Cell
	logger      logging.Logger
	formatter   errors.Formatter
	resolveUser func(r *http.Request) string
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for dispatch failures and
// serialization problems. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithFormatter sets the error formatter applied to every dispatch
// error, from either dispatch path. Defaults to the legacy formatter.
func WithFormatter(f errors.Formatter) Option {
	return func(h *Host) {
		if f != nil {
			h.formatter = f
		}
	}
}

// WithUserResolver sets how the session user is derived from a request.
// The default reads the X-Frappe-User header and falls back to
// GuestUser.
func WithUserResolver(fn func(r *http.Request) string) Option {
	return func(h *Host) {
		if fn != nil {
			h.resolveUser = fn
		}
	}
}

// New creates a Host around the original dispatch function.
// Returns ErrNilDispatcher if original is nil.
func New(original DispatchFunc, opts ...Option) (*Host, error) {
	cell, err := NewCell(original)
	if err != nil {
		return nil, err
	}

	h := &Host{
		cell:      cell,
		logger:    noopLogger{},
		formatter: errors.NewLegacy(),
		resolveUser: func(r *http.Request) string {
			return r.Header.Get("X-Frappe-User")
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Cell returns the host's dispatch cell. Interceptors install through
// it.
func (h *Host) Cell() *Cell {
	return h.cell
}

// Dispatch routes an already-built context through the active
// dispatcher.
func (h *Host) Dispatch(c *Context) (any, error) {
	return h.cell.Dispatch(c)
}

// ServeHTTP adapts an HTTP request into a dispatch context, dispatches
// it, and writes the result. Handler errors reach the formatter with
// their identity intact; nothing between the handler and this method
// catches or rewraps them.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := NewContext(r.Context(), r.Method, r.URL.Path)
	c.SetUser(h.resolveUser(r))

	h.populateForm(c, r)

	result, err := h.cell.Dispatch(c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeResult(w, c, result)
}

// populateForm fills the parameter namespace from the query string and
// request body. Single-valued keys become strings, repeated keys become
// string slices. JSON bodies merge on top of query parameters; path
// parameters are merged later by the dispatch layer and win over both.
func (h *Host) populateForm(c *Context, r *http.Request) {
	ct := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.logger.Warn("multipart form parse failed", "error", err.Error(), "path", r.URL.Path)
		}
	case strings.HasPrefix(ct, "application/json"):
		if err := r.ParseForm(); err != nil {
			h.logger.Warn("form parse failed", "error", err.Error(), "path", r.URL.Path)
		}
		h.mergeValues(c, r.Form)
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			c.MergeForm(body)
		}
		return
	default:
		if err := r.ParseForm(); err != nil {
			h.logger.Warn("form parse failed", "error", err.Error(), "path", r.URL.Path)
		}
	}

	h.mergeValues(c, r.Form)
}

func (h *Host) mergeValues(c *Context, values map[string][]string) {
	for k, vs := range values {
		if len(vs) == 1 {
			c.SetFormValue(k, vs[0])
		} else {
			c.SetFormValue(k, vs)
		}
	}
}

// writeResult serializes a successful dispatch result. Byte slices are
// written raw; everything else is JSON-encoded exactly as the handler
// returned it.
func (h *Host) writeResult(w http.ResponseWriter, c *Context, result any) {
	status := c.ResponseStatus()
	if status == 0 {
		status = http.StatusOK
	}

	if raw, ok := result.([]byte); ok {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(status)
		if _, err := w.Write(raw); err != nil {
			h.logger.Error("response write failed", "error", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("response encode failed", "error", err.Error())
	}
}

// writeError serializes a dispatch error through the configured
// formatter.
func (h *Host) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("dispatch failed",
		"error", err.Error(),
		"method", r.Method,
		"path", r.URL.Path,
	)

	resp := h.formatter.Format(r, err)

	for k, vs := range resp.Headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	if encErr := json.NewEncoder(w).Encode(resp.Body); encErr != nil {
		h.logger.Error("error encode failed", "error", encErr.Error())
	}
}

// noopLogger discards all log output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
