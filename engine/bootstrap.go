package engine

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

const gojaModule = "github.com/dop251/goja"

// platform is the process-wide state installed by Init.
type platform struct {
	version string
	started time.Time
}

var (
	initMu      sync.Mutex
	initialized atomic.Bool
	current     platform
)

// Init installs the process-wide engine state. It must be called once
// before the first isolate is created. A second call returns an
// already_initialized error and leaves the running platform untouched.
func Init() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized.Load() {
		return errors.AlreadyInitialized("engine")
	}

	current = platform{
		version: engineVersion(),
		started: time.Now(),
	}
	initialized.Store(true)

	Logger().Debug("engine initialized", zap.String("version", current.version))
	return nil
}

// Initialized reports whether Init has completed.
func Initialized() bool {
	return initialized.Load()
}

// Version returns the identity of the embedded script engine.
func Version() string {
	if initialized.Load() {
		return current.version
	}
	return engineVersion()
}

func engineVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "goja (devel)"
	}
	for _, dep := range bi.Deps {
		if dep.Path != gojaModule {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return "goja " + dep.Replace.Version
		}
		if dep.Version != "" {
			return "goja " + dep.Version
		}
	}
	return "goja (devel)"
}

func mustBeInitialized(phase errors.Phase) {
	if !initialized.Load() {
		panic(errors.NotInitialized(phase, "engine"))
	}
}
