package engine

import "time"

// Config holds isolate configuration options.
type Config struct {
	// Observer receives one event per RunScript call. Optional.
	Observer Observer

	// HeapSizeLimit is reported as the heap size limit in heap statistics.
	// Zero uses the Go runtime memory limit.
	HeapSizeLimit uint64

	// MaxCallStackSize bounds the script call stack depth. Zero keeps the
	// engine default.
	MaxCallStackSize int

	// Strict compiles every script in strict mode.
	Strict bool

	// EnableWebAssembly installs the WebAssembly global in new contexts.
	EnableWebAssembly bool

	// WasmMemoryLimitPages sets the maximum memory of WebAssembly modules in
	// pages (64KB each). 0 means the wazero default.
	WasmMemoryLimitPages uint32
}

// DefaultConfig returns the configuration used by NewIsolate.
func DefaultConfig() *Config {
	return &Config{}
}

func (c *Config) clone() Config {
	if c == nil {
		return Config{}
	}
	return *c
}

// RunEvent describes one completed RunScript call.
type RunEvent struct {
	IsolateID string
	Origin    string
	Duration  time.Duration
	// Outcome is zero for a successful run, otherwise the kind of failure.
	Outcome ErrorKind
}

// Observer is notified after every script run. Implementations must not
// call back into the isolate that produced the event.
type Observer interface {
	OnScriptRun(RunEvent)
}
