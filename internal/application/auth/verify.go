package auth

import (
	"context"
	"strings"

	"github.com/taskvault/auth-service/internal/domain"
)

// VerifyEmail burns a verification token and transitions the matching
// account to verified. Exactly-once consumption is the store's job:
// the token lookup and the verified-flag update happen in one atomic
// operation, so a concurrent second use observes an already-cleared
// token and fails.
func (s *Service) VerifyEmail(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrInvalidVerificationLink()
	}

	u, err := s.users.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("email_verified", map[string]string{"user_id": u.ID})
	return u, nil
}
