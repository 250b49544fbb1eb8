package auth

import (
	"context"
	"strings"

	"github.com/taskvault/auth-service/internal/domain"
)

// Login authenticates a password attempt against the stored credentials
// and the verification gate.
//
// The checks run in a fixed order so that failures cannot be told
// apart by message text: unknown email, password-less (federated-only)
// account and wrong password all surface the same ErrInvalidCredentials.
// Only an unverified account with correct-looking credentials gets the
// distinct ErrEmailNotVerified, a deliberate trade-off to help
// legitimate users finish signup.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.audit("login_failed", map[string]string{"reason": "unknown_email"})
		return domain.User{}, domain.ErrInvalidCredentials()
	}

	if !u.HasPassword() {
		s.audit("login_failed", map[string]string{"reason": "no_password"})
		return domain.User{}, domain.ErrInvalidCredentials()
	}

	if !u.Verified() {
		s.audit("login_failed", map[string]string{"reason": "email_not_verified"})
		return domain.User{}, domain.ErrEmailNotVerified()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.audit("login_failed", map[string]string{"reason": "bad_password"})
		return domain.User{}, domain.ErrInvalidCredentials()
	}

	s.audit("login_success", map[string]string{"user_id": u.ID})
	return u, nil
}
