package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskvault/auth-service/internal/application/auth"
	"github.com/taskvault/auth-service/internal/domain"
)

// JWTSigner signs and verifies session tokens with a process-wide
// HS256 secret loaded at startup. The secret is never logged.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) IssueSession(claims auth.SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	sc := sessionClaims{
		Name:  claims.Name,
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *JWTSigner) VerifySession(token string) (auth.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrUnauthenticated()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Expired and tampered tokens are indistinguishable to callers.
		return auth.SessionClaims{}, domain.ErrUnauthenticated()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.SessionClaims{}, domain.ErrUnauthenticated()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.SessionClaims{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Exp:    exp,
	}, nil
}
