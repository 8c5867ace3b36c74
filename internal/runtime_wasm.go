//go:build wasm

package internal

import "sync"

var (
	once          sync.Once
	globalRuntime *Runtime
)

// GetRuntime returns a single process-wide Runtime under wasm, where
// goroutine ids aren't meaningful for graph ownership.
func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}
