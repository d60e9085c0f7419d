package weft

import (
	"errors"
	"testing"
)

func TestInvalidInputError(t *testing.T) {
	err := &InvalidInputError{Message: "projection is empty"}

	if err.Error() != "invalid input: projection is empty" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &BackendError{Message: "calling translation backend", Cause: cause}

	if err.Error() != "backend unavailable: calling translation backend: connection refused" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}

	// Without cause
	err2 := &BackendError{Message: "timeout"}
	if err2.Error() != "backend unavailable: timeout" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestEmptyResponseError(t *testing.T) {
	err := &EmptyResponseError{}

	if err.Error() != "empty response from translation backend" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestMalformedResponseError(t *testing.T) {
	cause := errors.New("invalid character '<'")
	err := &MalformedResponseError{Raw: "<html>", Cause: cause}

	if err.Error() != "malformed response from translation backend: invalid character '<'" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}

	if err.Raw != "<html>" {
		t.Error("Raw should keep the response body")
	}
}

func TestRemoteRejectedError(t *testing.T) {
	err := &RemoteRejectedError{Status: 409, Body: `{"message":"conflict"}`}

	expected := `remote rejected request: status 409: {"message":"conflict"}`
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s, want %s", err.Error(), expected)
	}
}

func TestStructuralMismatchError(t *testing.T) {
	err := &StructuralMismatchError{Message: "expected 5 nodes, got 3"}

	if err.Error() != "structural mismatch: expected 5 nodes, got 3" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}
