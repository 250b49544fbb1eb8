package postgres

import (
	"database/sql"
	"time"

	"github.com/taskvault/auth-service/internal/domain"
)

type userRow struct {
	ID                string
	Email             string
	DisplayName       string
	PasswordHash      sql.NullString
	VerifiedAt        sql.NullTime
	VerificationToken sql.NullString
	CreatedAt         time.Time
}

func (ur userRow) toDomain() domain.User {
	u := domain.User{
		ID:          ur.ID,
		Email:       ur.Email,
		DisplayName: ur.DisplayName,
		CreatedAt:   ur.CreatedAt,
	}
	if ur.PasswordHash.Valid {
		u.PasswordHash = ur.PasswordHash.String
	}
	if ur.VerifiedAt.Valid {
		t := ur.VerifiedAt.Time
		u.VerifiedAt = &t
	}
	if ur.VerificationToken.Valid {
		u.VerificationToken = ur.VerificationToken.String
	}
	return u
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
