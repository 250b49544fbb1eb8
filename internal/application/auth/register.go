package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taskvault/auth-service/internal/domain"
)

// Register creates a new unverified account and dispatches the
// verification mail. The mail handoff waits for transport acceptance
// but its failure does not undo the created account; the result
// reports it so the caller can warn the user.
func (s *Service) Register(ctx context.Context, email, password string) (RegisterResult, error) {
	// The address is stored as given; lookups are case-sensitive.
	email = strings.TrimSpace(email)
	if email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}

	// Registration is allowed to reveal that an email is taken; login
	// is not. The store's uniqueness constraint is the authoritative
	// check, this lookup just gives the common case a cheaper path.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	token, err := s.issuer.Issue()
	if err != nil {
		return RegisterResult{}, domain.ErrRandomFailed(err)
	}

	u := domain.User{
		ID:                uuid.NewString(),
		Email:             email,
		DisplayName:       domain.DisplayNameFromEmail(email),
		PasswordHash:      hash,
		VerificationToken: token,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	s.audit("user_registered", map[string]string{"user_id": created.ID})

	res := RegisterResult{User: created, MailAccepted: true}

	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	if err := s.mail.PublishVerificationMail(mailCtx, VerificationMailEvent{
		UserID: created.ID,
		Email:  created.Email,
		URL:    s.verifyEmailBaseURL + token,
	}); err != nil {
		s.audit("verification_mail_failed", map[string]string{"user_id": created.ID})
		res.MailAccepted = false
	}

	return res, nil
}
