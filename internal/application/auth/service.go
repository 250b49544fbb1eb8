package auth

import (
	"time"

	"github.com/taskvault/auth-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	issuer TokenIssuer
	signer SessionSigner
	mail   MailPublisher

	sessionTTL time.Duration

	// URL prefix for links embedded in verification mail
	verifyEmailBaseURL string
	mailTimeout        time.Duration

	audit func(action string, fields map[string]string)
}

type Config struct {
	SessionTTL         time.Duration
	VerifyEmailBaseURL string
	MailTimeout        time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	issuer TokenIssuer,
	signer SessionSigner,
	mail MailPublisher,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	mailTimeout := cfg.MailTimeout
	if mailTimeout <= 0 {
		mailTimeout = 5 * time.Second
	}
	return &Service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		signer: signer,
		mail:   mail,
		audit:  func(string, map[string]string) {},

		sessionTTL:         sessionTTL,
		verifyEmailBaseURL: cfg.VerifyEmailBaseURL,
		mailTimeout:        mailTimeout,
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

type RegisterResult struct {
	User domain.User
	// MailAccepted is false when the account was created but the
	// transport did not acknowledge the verification mail. The caller
	// should surface this as a retryable warning, never as a failure.
	MailAccepted bool
}

// SessionView is the client-facing identity re-derived from a session
// token. Handlers downstream of the auth middleware receive it already
// validated and never need to null-check it.
type SessionView struct {
	ID    string
	Name  string
	Email string
}
