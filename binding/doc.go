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

// Package binding decodes the request parameter namespace into typed
// values and structs.
//
// Handlers read parameters from the host.Context namespace, where query
// parameters, form fields, body fields, and extracted path parameters
// share one map. The typed getters (String, Int, Float, Bool, UUID)
// pull single parameters with coercion; Bind decodes the whole
// namespace into a struct using `form` tags and validates it with
// go-playground/validator tags.
//
// Every binding failure satisfies errors.Is against
// errors.ErrInvalidArgument, so the serialization layer reports it as a
// ValidationError with status 400:
//
//	type createItem struct {
//	    Code string `form:"code" validate:"required"`
//	    Qty  int    `form:"qty"  validate:"gte=0"`
//	}
//
//	form, err := binding.Bind[createItem](c)
//	if err != nil {
//	    return nil, err
//	}
package binding
