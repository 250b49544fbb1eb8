package security

import (
	"crypto/rand"
	"encoding/hex"
)

const verificationTokenBytes = 32

// VerificationTokenIssuer generates single-use email-verification
// tokens: 32 cryptographically-random bytes, hex-encoded to a 64-char
// URL-safe string. Stateless.
type VerificationTokenIssuer struct{}

func NewVerificationTokenIssuer() *VerificationTokenIssuer {
	return &VerificationTokenIssuer{}
}

func (VerificationTokenIssuer) Issue() (string, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
