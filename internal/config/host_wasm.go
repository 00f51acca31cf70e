//go:build js && wasm

package config

// DefaultHost is the host used when none is configured.
// Browser-embedded builds have a single event loop.
const DefaultHost = Cooperative
