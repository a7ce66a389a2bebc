package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad field", http.StatusBadRequest)
	want := "INVALID_INPUT: bad field"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	withCause := err.WithCause(stderrors.New("boom"))
	if withCause.Error() != "INVALID_INPUT: bad field (cause: boom)" {
		t.Fatalf("unexpected error string: %q", withCause.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := DependencyUnavailable("attempt throttle", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(TooManyAttempts()); got != ErrCodeTooManyAttempts {
		t.Fatalf("expected TOO_MANY_ATTEMPTS, got %s", got)
	}

	// Wrapped AppError is still found.
	wrapped := fmt.Errorf("authenticate: %w", InvalidCredentials())
	if got := CodeOf(wrapped); got != ErrCodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", got)
	}

	if got := CodeOf(stderrors.New("plain")); got != ErrCodeInternal {
		t.Fatalf("expected INTERNAL_ERROR for plain error, got %s", got)
	}
}

func TestIs(t *testing.T) {
	if !Is(TokenInvalid(), ErrCodeTokenInvalid) {
		t.Fatal("expected Is to match TOKEN_INVALID")
	}
	if Is(TokenInvalid(), ErrCodeTokenExpired) {
		t.Fatal("did not expect TOKEN_EXPIRED match")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err       *AppError
		retryable bool
	}{
		{TooManyAttempts(), true},
		{DependencyUnavailable("refresh token store", nil), true},
		{InvalidCredentials(), false},
		{InvalidInput("email", "must not be blank"), false},
		{Configuration("signing key missing"), false},
	}
	for _, tc := range cases {
		if tc.err.Retryable != tc.retryable {
			t.Fatalf("%s: expected retryable=%v", tc.err.Code, tc.retryable)
		}
	}
}

func TestInvalidCredentials_GenericWording(t *testing.T) {
	// Unknown identity and wrong secret must produce byte-identical failures.
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Message != b.Message || a.Code != b.Code || a.HTTPStatus != b.HTTPStatus {
		t.Fatal("InvalidCredentials must be indistinguishable across causes")
	}
}
