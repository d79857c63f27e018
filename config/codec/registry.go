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

package codec

import "fmt"

// registry holds the encoders and decoders known to the package.
// Built-in codecs register in their init functions; custom codecs may
// register before configuration loading starts.
var registry = struct {
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// RegisterEncoder registers an encoder under the given type, replacing
// any previous registration.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.encoders[name] = encoder
}

// RegisterDecoder registers a decoder under the given type, replacing
// any previous registration.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.decoders[name] = decoder
}

// GetEncoder returns the encoder registered under the given type.
func GetEncoder(name Type) (Encoder, error) {
	encoder, ok := registry.encoders[name]
	if !ok {
		return nil, fmt.Errorf("encoder not found for type: %s", name)
	}
	return encoder, nil
}

// GetDecoder returns the decoder registered under the given type.
func GetDecoder(name Type) (Decoder, error) {
	decoder, ok := registry.decoders[name]
	if !ok {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return decoder, nil
}
