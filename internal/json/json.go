//go:build (linux || darwin || windows) && (amd64 || arm64)

// Package json is the JSON codec for serialized patterns. It uses sonic where
// the JIT is available and encoding/json elsewhere.
package json

import "github.com/bytedance/sonic"

var api = sonic.ConfigStd

// Marshal encodes a Go value as JSON, compatible with encoding/json.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes a JSON payload into the provided destination.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
