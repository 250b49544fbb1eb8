package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/taskvault/auth-service/internal/domain"
)

const userColumns = "id, email, display_name, password_hash, verified_at, verification_token, created_at"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

// Emails are stored and matched exactly as given; only surrounding
// whitespace is stripped.
func trimEmail(email string) string {
	return strings.TrimSpace(email)
}

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.DisplayName,
		&ur.PasswordHash,
		&ur.VerifiedAt,
		&ur.VerificationToken,
		&ur.CreatedAt,
	)
	return ur, err
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = trimEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

// Create inserts the user. The unique index on email makes
// check-then-create race-free: the loser of a duplicate race gets
// ErrEmailAlreadyExists from the constraint, never a second account.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = trimEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.DisplayName == "" {
		u.DisplayName = domain.DisplayNameFromEmail(u.Email)
	}

	const q = `
INSERT INTO users (id, email, display_name, password_hash, verified_at, verification_token)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + userColumns + `;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.DisplayName, nullStr(u.PasswordHash), nullTime(u.VerifiedAt), nullStr(u.VerificationToken),
	))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

// ConsumeVerificationToken burns the token in a single conditional
// update: setting verified_at and clearing the token happen in the
// same statement, keyed on the still-present token. Of two racing
// consumers the second matches zero rows and observes
// ErrVerificationTokenInvalid; no account can ever double-verify.
func (r *UserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrVerificationTokenInvalid()
	}

	const q = `
UPDATE users
SET verified_at = NOW(),
    verification_token = NULL
WHERE verification_token = $1
  AND verified_at IS NULL
RETURNING ` + userColumns + `;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrVerificationTokenInvalid()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}
