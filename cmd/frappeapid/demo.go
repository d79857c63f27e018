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

package main

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/i404788/frappeapi"
	"github.com/i404788/frappeapi/binding"
	"github.com/i404788/frappeapi/errors"
	"github.com/i404788/frappeapi/host"
	"github.com/i404788/frappeapi/logging"
	"github.com/i404788/frappeapi/route"
)

// item is one inventory record.
type item struct {
	Code string `json:"item_code"`
	Name string `json:"item_name"`
	Qty  int    `json:"stock_qty"`
}

// newItemParams binds the create-item request.
type newItemParams struct {
	Code string `form:"item_code" validate:"required"`
	Name string `form:"item_name" validate:"required"`
	Qty  int    `form:"stock_qty" validate:"gte=0"`
}

// notFoundError carries the status and exception type legacy clients
// expect for a missing document.
type notFoundError struct {
	code string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Item %s not found", e.code)
}

func (e *notFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

func (e *notFoundError) Code() string {
	return "DoesNotExistError"
}

// inventory is the demo's in-memory item store.
type inventory struct {
	mu    sync.RWMutex
	items map[string]item
}

func seedInventory() *inventory {
	return &inventory{
		items: map[string]item{
			"WIDGET-1": {Code: "WIDGET-1", Name: "Widget, standard", Qty: 120},
			"GEAR-7":   {Code: "GEAR-7", Name: "Gear, 7-tooth", Qty: 34},
			"BOLT-M8":  {Code: "BOLT-M8", Name: "Bolt, M8x40", Qty: 2600},
		},
	}
}

func (s *inventory) list(c *host.Context) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *inventory) get(c *host.Context) (any, error) {
	code, _ := c.FormValue("code")
	key, _ := code.(string)

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, &notFoundError{code: key}
	}
	return it, nil
}

func (s *inventory) create(c *host.Context) (any, error) {
	params, err := binding.Bind[newItemParams](c)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[params.Code]; exists {
		return nil, errors.WithStatus(
			fmt.Errorf("item %s already exists", params.Code),
			http.StatusConflict,
		)
	}

	it := item{Code: params.Code, Name: params.Name, Qty: params.Qty}
	s.items[params.Code] = it
	return it, nil
}

func (s *inventory) remove(c *host.Context) (any, error) {
	code, _ := c.FormValue("code")
	key, _ := code.(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil, &notFoundError{code: key}
	}
	delete(s.items, key)
	return map[string]any{"item_code": key, "deleted": true}, nil
}

func (s *inventory) ping(c *host.Context) (any, error) {
	return "pong", nil
}

// newDemoApp assembles the inventory application: template routes for
// item CRUD, a dual registration so legacy clients can keep calling
// inventory.api.get_item, and a dotted-only ping.
func newDemoApp(log logging.Logger) *frappeapi.App {
	app := frappeapi.New(
		frappeapi.WithTitle("FrappeAPI"),
		frappeapi.WithVersion(version),
		frappeapi.WithDescription("Demo inventory host for the hybrid dispatch engine."),
		frappeapi.WithOpenAPITags(frappeapi.Tag{Name: "items", Description: "Inventory item operations"}),
		frappeapi.WithLogger(log),
	)

	inv := seedInventory()

	app.GET("/items", route.HandlerFunc(inv.list),
		frappeapi.WithMeta(
			route.WithName("list-items"),
			route.WithDescription("List all inventory items."),
			route.WithTags("items"),
		),
		frappeapi.WithGuest(),
	)

	app.GET("/items/{code}", route.HandlerFunc(inv.get),
		frappeapi.WithMeta(
			route.WithName("get-item"),
			route.WithDescription("Fetch one item by its code."),
			route.WithTags("items"),
		),
		frappeapi.WithDottedPath("inventory.api.get_item"),
		frappeapi.WithGuest(),
	)

	app.POST("/items", route.HandlerFunc(inv.create),
		frappeapi.WithMeta(
			route.WithName("create-item"),
			route.WithDescription("Create an item; the code must be unused."),
			route.WithTags("items"),
			route.WithStatusCode(http.StatusCreated),
		),
	)

	app.DELETE("/items/{code}", route.HandlerFunc(inv.remove),
		frappeapi.WithMeta(
			route.WithName("delete-item"),
			route.WithTags("items"),
		),
	)

	app.GET("", route.HandlerFunc(inv.ping),
		frappeapi.WithDottedPath("inventory.api.ping"),
		frappeapi.WithGuest(),
	)

	return app
}
