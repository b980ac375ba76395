package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeUnknownAction, "no such filter")
	if err.Code != ErrCodeUnknownAction {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownAction, err.Code)
	}
	if err.Message != "no such filter" {
		t.Errorf("expected message 'no such filter', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("UNKNOWN_ACTION should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeSource, "chunk read failed")
	if !err.Retryable {
		t.Error("SOURCE_ERROR should be retryable")
	}
}

func TestAppError_UnknownAction(t *testing.T) {
	err := UnknownAction("filter", "mass_cut")
	if err.Code != ErrCodeUnknownAction {
		t.Errorf("expected UNKNOWN_ACTION, got %s", err.Code)
	}
	if err.Details["kind"] != "filter" {
		t.Errorf("expected kind=filter, got %v", err.Details["kind"])
	}
	if err.Details["name"] != "mass_cut" {
		t.Errorf("expected name=mass_cut, got %v", err.Details["name"])
	}
	if !strings.Contains(err.Message, "mass_cut") {
		t.Errorf("expected failing name in message, got %q", err.Message)
	}
}

func TestAppError_ActionFailed(t *testing.T) {
	cause := fmt.Errorf("profile construction failed")
	err := ActionFailed("callback", "sphere", 42, cause)
	if err.Code != ErrCodeActionFailed {
		t.Errorf("expected ACTION_FAILED, got %s", err.Code)
	}
	if err.Details["kind"] != "callback" || err.Details["name"] != "sphere" {
		t.Errorf("expected kind/name details, got %v", err.Details)
	}
	if err.Details["index"] != 42 {
		t.Errorf("expected index=42, got %v", err.Details["index"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Retryable {
		t.Error("execution errors are fatal, not retryable")
	}
}

func TestAppError_InvalidActionKind(t *testing.T) {
	err := InvalidActionKind("mystery")
	if err.Code != ErrCodeInvalidActionKind {
		t.Errorf("expected INVALID_ACTION_KIND, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "callback, filter, or quantity") {
		t.Errorf("expected kind list in message, got %q", err.Message)
	}
}

func TestAppError_SourceError_Retryable(t *testing.T) {
	err := SourceError("materialize", fmt.Errorf("disk gone"))
	if !err.Retryable {
		t.Error("source errors should be retryable by the caller")
	}
	if err.Details["operation"] != "materialize" {
		t.Errorf("expected operation detail, got %v", err.Details)
	}
}

func TestAppError_CatalogWrite(t *testing.T) {
	err := CatalogWrite("/out/c.0.json", fmt.Errorf("permission denied"))
	if err.Code != ErrCodeCatalogWrite {
		t.Errorf("expected CATALOG_WRITE_ERROR, got %s", err.Code)
	}
	if err.Details["path"] != "/out/c.0.json" {
		t.Errorf("expected path detail, got %v", err.Details)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal(cause)
	if stderrors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	err := New(ErrCodeInternal, "boom").WithCause(fmt.Errorf("inner"))
	s := err.Error()
	if !strings.Contains(s, "INTERNAL_ERROR") || !strings.Contains(s, "inner") {
		t.Errorf("expected code and cause in string, got %q", s)
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad workers").WithDetail("workers", 0)
	if err.Details["workers"] != 0 {
		t.Errorf("expected workers=0 detail, got %v", err.Details)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(UnknownAction("recipe", "r")); got != ErrCodeUnknownAction {
		t.Errorf("expected UNKNOWN_ACTION, got %s", got)
	}
	wrapped := fmt.Errorf("wrap: %w", SourceError("chunks", fmt.Errorf("x")))
	if got := CodeOf(wrapped); got != ErrCodeSource {
		t.Errorf("expected SOURCE_ERROR through wrapping, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR for plain error, got %s", got)
	}
}
