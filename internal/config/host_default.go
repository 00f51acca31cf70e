//go:build !(js && wasm)

package config

// DefaultHost is the host used when none is configured.
const DefaultHost = Threaded
