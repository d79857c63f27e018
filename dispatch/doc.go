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

// Package dispatch installs the hybrid route interceptor into a host's
// dispatcher cell.
//
// The interceptor wraps the host's original dispatch function exactly
// once per cell. On every request it derives the effective path (the
// reserved API prefix is stripped unless the path uses the dotted
// method convention), walks every registered application's routes in
// registration order, and invokes the first full match. When no route
// matches fully the retained original dispatcher runs, so a request
// that matches nothing behaves exactly as it did before installation.
//
// A path-only match (right path, wrong verb) also falls through to the
// original dispatcher: the legacy path gets to try before anything
// answers method-not-allowed. Partial observations are still reported
// to the Recorder for operational visibility.
//
// Matching never fails. Only handler invocation can return an error,
// and that error leaves the interceptor untouched so the host's
// rollback and serialization layers observe it with its identity
// intact.
package dispatch
