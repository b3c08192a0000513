package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_ErrorIncludesCodeAndCause(t *testing.T) {
	err := ErrDBQueryFailed("upsert_meeting", fmt.Errorf("connection reset"))

	want := "[DB_QUERY_FAILED] Database query failed: connection reset"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.Details["query"] != "upsert_meeting" {
		t.Fatalf("missing query detail: %v", err.Details)
	}
}

func TestAppError_UnwrapAndAs(t *testing.T) {
	cause := stdErrors.New("boom")
	wrapped := fmt.Errorf("publish: %w", ErrPublishFailed("t1", cause))

	var appErr AppError
	if !stdErrors.As(wrapped, &appErr) {
		t.Fatalf("expected AppError in chain")
	}
	if appErr.Code != ErrorCode_PUBLISH_FAILED {
		t.Fatalf("unexpected code %s", appErr.Code)
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("expected raw cause to be reachable")
	}
}

func TestErrProjectNotFound_Is404(t *testing.T) {
	err := ErrProjectNotFound("p-1")
	if err.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", err.HTTPCode)
	}
	if err.Details["project_id"] != "p-1" {
		t.Fatalf("missing project id detail")
	}
}

func TestErrorCode_StringUnknown(t *testing.T) {
	if got := ErrorCode(42).String(); got != "UNKNOWN" {
		t.Fatalf("got %q", got)
	}
}
