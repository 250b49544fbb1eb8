package dto

import (
	"errors"
	"testing"

	"github.com/taskvault/auth-service/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error, got %v", err)
	}
	return de.Fields
}

func TestRegisterRequest_Valid(t *testing.T) {
	t.Parallel()

	r := RegisterRequest{Email: " ada@example.com ", Password: "Passw0rd!"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if r.Email != "ada@example.com" {
		t.Fatalf("expected trimmed email, got %q", r.Email)
	}
}

func TestRegisterRequest_MissingFields(t *testing.T) {
	t.Parallel()

	r := RegisterRequest{}
	err := r.Validate()
	if !domain.Is(err, "invalid_input") {
		t.Fatalf("expected invalid_input, got %v", err)
	}

	fields := fieldsOf(t, err)
	if len(fields["email"]) == 0 || len(fields["password"]) == 0 {
		t.Fatalf("expected messages for both fields, got %v", fields)
	}
}

func TestRegisterRequest_BadEmail(t *testing.T) {
	t.Parallel()

	r := RegisterRequest{Email: "not-an-email", Password: "Passw0rd!"}
	err := r.Validate()
	if !domain.Is(err, "invalid_input") {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if fields := fieldsOf(t, err); len(fields["email"]) == 0 {
		t.Fatalf("expected email message, got %v", fields)
	}
}

func TestRegisterRequest_PasswordPolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"meets policy", "Abc12!", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "abc123!", false},
		{"no digit", "Abcdef!", false},
		{"no symbol", "Abc1234", false},
		{"longer valid", "Sup3r-Secret-Pass", true},
		{"over bcrypt limit", "A1!" + string(make([]byte, 80)), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := RegisterRequest{Email: "a@b.com", Password: tc.password}
			err := r.Validate()
			if tc.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatalf("expected policy rejection")
			}
		})
	}
}

func TestLoginRequest_OnlyPresenceChecked(t *testing.T) {
	t.Parallel()

	// malformed email must pass request validation; it fails later as
	// invalid credentials so the response does not leak address shape
	r := LoginRequest{Email: "not-an-email", Password: "x"}
	if err := r.Validate(); err != nil {
		t.Fatalf("login validation must not inspect email shape, got %v", err)
	}

	empty := LoginRequest{}
	if err := empty.Validate(); !domain.Is(err, "invalid_input") {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestVerifyEmailPath_Validate(t *testing.T) {
	t.Parallel()

	p := VerifyEmailPath{Token: "  abc  "}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if p.Token != "abc" {
		t.Fatalf("expected trimmed token, got %q", p.Token)
	}

	blank := VerifyEmailPath{Token: "   "}
	if err := blank.Validate(); !domain.Is(err, "invalid_link") {
		t.Fatalf("expected invalid_link, got %v", err)
	}
}
