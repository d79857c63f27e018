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

// Package host models the request-processing system the dispatch engine
// plugs into: a process with a single global dispatch slot and an
// ambient per-request parameter namespace.
//
// The three pieces:
//
//   - Context: one request's verb, raw path, session user, and mutable
//     parameter namespace
//   - Cell: the dispatch slot holding the active function, the retained
//     original, and a one-shot interception transition
//   - Host: the HTTP surface that builds contexts, dispatches through
//     the cell, and serializes results and errors
//
// The Cell is the deliberate replacement for swapping a global function
// reference: interception is an explicit, observable, singly-settable
// operation, and the original dispatcher stays reachable forever as the
// fallback target.
//
//	h, err := host.New(legacyDispatch)
//	if err != nil {
//	    return err
//	}
//	h.Cell().Intercept(func(original host.DispatchFunc) host.DispatchFunc {
//	    return func(c *host.Context) (any, error) {
//	        // try template routes, then:
//	        return original(c)
//	    }
//	})
//	http.ListenAndServe(addr, h)
package host
