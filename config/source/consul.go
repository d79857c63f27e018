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

package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"

	"github.com/i404788/frappeapi/config/codec"
)

// ConsulKV is the slice of the Consul client the source needs. The
// indirection allows tests to run against a fake KV store.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul loads configuration from a single key in Consul's KV store.
// The client reads its address and token from the standard
// CONSUL_HTTP_ADDR and CONSUL_HTTP_TOKEN environment variables.
type Consul struct {
	kv      ConsulKV
	path    string
	decoder codec.Decoder
}

// NewConsul creates a Consul source for the given KV path. When kv is
// nil, a client built from api.DefaultConfig provides the store.
func NewConsul(path string, decoder codec.Decoder, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}

	return &Consul{kv: kv, path: path, decoder: decoder}, nil
}

// Load fetches and decodes the value under the configured path. A
// missing key yields an empty map, so an unpopulated Consul cluster is
// not an error.
func (c *Consul) Load(ctx context.Context) (map[string]any, error) {
	pair, _, err := c.kv.Get(c.path, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}

	if pair == nil {
		return make(map[string]any), nil
	}

	var conf map[string]any
	if err := c.decoder.Decode(pair.Value, &conf); err != nil {
		return nil, fmt.Errorf("failed to decode consul value: %w", err)
	}

	return conf, nil
}
