package auth

import (
	"context"
	"time"

	"github.com/taskvault/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.

Create must enforce email uniqueness atomically: two racing creates for
the same email yield exactly one success and one ErrEmailAlreadyExists.
ConsumeVerificationToken must burn the token atomically: of two racing
consumers, exactly one gets the user back and the other gets
ErrVerificationTokenInvalid.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. Compare returns nil on match and must take
time independent of where the mismatch occurs.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
TokenIssuer
-----------
Generates opaque single-use verification tokens. Stateless.
*/
type TokenIssuer interface {
	Issue() (string, error)
}

/*
SessionSigner
-------------
Issues and verifies signed session tokens (JWT).
Used by the service + auth middleware.
*/
type SessionClaims struct {
	UserID string
	Name   string
	Email  string
	Exp    time.Time
}

type SessionSigner interface {
	IssueSession(claims SessionClaims, ttl time.Duration) (string, error)
	VerifySession(token string) (SessionClaims, error)
}

/*
MailPublisher
-------------
Hands verification mail off to the outbound transport. A nil return
means the transport ACCEPTED the message (broker confirm), not that it
was delivered. The auth service never sends mail directly.
*/
type MailPublisher interface {
	PublishVerificationMail(ctx context.Context, evt VerificationMailEvent) error
}

// VerificationMailEvent is the strongly typed message for the mail
// transport; the consumer does not need to understand tokens.
type VerificationMailEvent struct {
	UserID string
	Email  string
	URL    string
}
