package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseTemplate,
				Kind:   KindIsolateMismatch,
				Path:   []string{"config", "limits", "max"},
				Handle: "Value",
				Origin: "main.js",
				Detail: "foreign isolate",
			},
			contains: []string{"[template]", "isolate_mismatch", "config.limits.max", "Value", "main.js", "foreign isolate"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseContext,
				Kind:  KindDisposed,
			},
			contains: []string{"[context]", "disposed"},
		},
		{
			name: "origin only",
			err: &Error{
				Phase:  PhaseCompile,
				Kind:   KindInvalidInput,
				Origin: "boot.js",
				Detail: "empty source",
			},
			contains: []string{"[compile]", "origin boot.js", " - empty source"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidData,
				Detail: "load run.yaml",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[config]", "invalid_data", "load run.yaml", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseHandle,
		Kind:  KindInvalidHandle,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseValue,
		Kind:  KindDisposed,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseValue, Kind: KindDisposed}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseContext, Kind: KindDisposed}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseValue, Kind: KindInvalidHandle}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseValue, Kind: KindDisposed}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseTemplate, KindIsolateMismatch).
		Path("globals", "answer").
		Handle("Value").
		Origin("init.js").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "iso-a", "iso-b").
		Build()

	if err.Phase != PhaseTemplate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseTemplate)
	}
	if err.Kind != KindIsolateMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIsolateMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "globals" || err.Path[1] != "answer" {
		t.Errorf("Path = %v, want [globals answer]", err.Path)
	}
	if err.Handle != "Value" {
		t.Errorf("Handle = %v, want 'Value'", err.Handle)
	}
	if err.Origin != "init.js" {
		t.Errorf("Origin = %v, want 'init.js'", err.Origin)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected iso-a, got iso-b" {
		t.Errorf("Detail = %v, want 'expected iso-a, got iso-b'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseIsolate, "engine")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
		if !containsSubstring(err.Detail, "engine") {
			t.Errorf("Detail = %v, should name the component", err.Detail)
		}
	})

	t.Run("AlreadyInitialized", func(t *testing.T) {
		err := AlreadyInitialized("engine")
		if err.Phase != PhaseBootstrap || err.Kind != KindAlreadyInitialized {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Disposed", func(t *testing.T) {
		err := Disposed(PhaseContext, "Context")
		if err.Kind != KindDisposed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDisposed)
		}
		if err.Handle != "Context" {
			t.Errorf("Handle = %v, want 'Context'", err.Handle)
		}
	})

	t.Run("IsolateMismatch", func(t *testing.T) {
		err := IsolateMismatch(PhaseContext, "ObjectTemplate", "a", "b")
		if err.Kind != KindIsolateMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIsolateMismatch)
		}
		if !containsSubstring(err.Detail, "expected a") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("InvalidHandle", func(t *testing.T) {
		err := InvalidHandle(PhaseHandle, "Value", 7)
		if err.Kind != KindInvalidHandle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidHandle)
		}
		if err.Value != uint32(7) {
			t.Errorf("Value = %v, want 7", err.Value)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseTemplate, []string{"answer"}, "Value", "primitive")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
	})

	t.Run("OutstandingBorrow", func(t *testing.T) {
		cause := errors.New("2 borrows")
		err := OutstandingBorrow(PhaseHandle, "Isolate", cause)
		if err.Kind != KindOutstandingBorrow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutstandingBorrow)
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through errors.Is")
		}
	})

	t.Run("ConfigFailed", func(t *testing.T) {
		err := ConfigFailed("run.toml", errors.New("bad key"))
		if err.Phase != PhaseConfig {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseConfig)
		}
		if !containsSubstring(err.Error(), "run.toml") {
			t.Errorf("Error() = %v, should contain path", err.Error())
		}
	})
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && containsSubstringHelper(s, substr)))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
