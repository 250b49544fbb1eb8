package domain

import (
	"errors"
	"testing"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("socket closed")
	err := ErrDBUnavailable(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if err.Kind != KindInfrastructure {
		t.Fatalf("kind = %v", err.Kind)
	}
	if msg := err.Error(); msg == "" || msg == cause.Error() {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	t.Parallel()

	if !Is(ErrInvalidCredentials(), "invalid_credentials") {
		t.Fatalf("expected code match")
	}
	if Is(ErrInvalidCredentials(), "unauthenticated") {
		t.Fatalf("codes must not cross-match")
	}
	if Is(errors.New("plain"), "invalid_credentials") {
		t.Fatalf("non-domain errors never match")
	}
}

func TestErrInvalidInput_CarriesFields(t *testing.T) {
	t.Parallel()

	err := ErrInvalidInput(map[string][]string{"email": {"is required"}})
	if err.Fields["email"][0] != "is required" {
		t.Fatalf("fields = %v", err.Fields)
	}
	if err.Kind != KindValidation {
		t.Fatalf("kind = %v", err.Kind)
	}
}

func TestCredentialErrors_StableMessages(t *testing.T) {
	t.Parallel()

	// Two separate constructions must produce identical text so retries
	// and different failure paths cannot be distinguished.
	a := ErrInvalidCredentials().Error()
	b := ErrInvalidCredentials().Error()
	if a != b {
		t.Fatalf("%q != %q", a, b)
	}

	if ErrInvalidCredentials().Error() == ErrEmailNotVerified().Error() {
		t.Fatalf("verification gate error must be distinct from credential error")
	}
}
