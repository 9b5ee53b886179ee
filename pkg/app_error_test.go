package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_ToHTTPErrorHidesCause(t *testing.T) {
	cause := errors.New("dynamodb: connection refused")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	res := appErr.ToHTTPError()
	if res.Message != "An internal error occurred" || res.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected http error: %+v", res)
	}
}

func TestNewValidationError(t *testing.T) {
	appErr := NewValidationError(FieldError{Field: "body", Error: "required"})
	res := appErr.ToHTTPError()
	if res.Status != http.StatusBadRequest || res.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected http error: %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "body" {
		t.Fatalf("unexpected field errors: %+v", res.Errors)
	}
}
