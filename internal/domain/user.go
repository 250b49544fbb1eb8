package domain

import (
	"strings"
	"time"
)

// User is the credential-state record for a single account.
//
// PasswordHash is empty for accounts created through a federated
// provider only. VerificationToken is non-empty only while the account
// is unverified and exactly one unused token is outstanding; consuming
// the token clears it and sets VerifiedAt in the same store update.
type User struct {
	ID                string
	Email             string
	DisplayName       string
	PasswordHash      string
	VerifiedAt        *time.Time
	VerificationToken string
	CreatedAt         time.Time
}

func (u User) Verified() bool { return u.VerifiedAt != nil }

func (u User) HasPassword() bool { return u.PasswordHash != "" }

// DisplayNameFromEmail derives the default display name from the local
// part of an email address ("ada@example.com" -> "ada").
func DisplayNameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
