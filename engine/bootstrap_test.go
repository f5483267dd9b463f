package engine

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/js-runtime/errors"
)

func TestInit_Twice(t *testing.T) {
	if !Initialized() {
		t.Fatal("Initialized() = false after TestMain")
	}

	err := Init()
	if err == nil {
		t.Fatal("second Init should fail")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBootstrap, Kind: errors.KindAlreadyInitialized}) {
		t.Errorf("unexpected error: %v", err)
	}
	if !Initialized() {
		t.Error("failed Init should leave the engine initialized")
	}
}

func TestVersion(t *testing.T) {
	v := Version()
	if !strings.HasPrefix(v, "goja ") {
		t.Errorf("Version() = %q, want goja prefix", v)
	}
	if v != Version() {
		t.Error("Version() should be stable")
	}
}
