package auth

import (
	"github.com/taskvault/auth-service/internal/domain"
)

// IssueSession converts an authenticated identity into a signed session
// token. The claims carry the subject ID plus a display snapshot of
// name and email taken at issuance; the snapshot is not re-validated
// against the store on later requests (accepted staleness window is
// the session lifetime). Password hashes and verification tokens never
// enter the claims.
func (s *Service) IssueSession(u domain.User) (string, error) {
	token, err := s.signer.IssueSession(SessionClaims{
		UserID: u.ID,
		Name:   u.DisplayName,
		Email:  u.Email,
	}, s.sessionTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return token, nil
}

// CurrentSession re-derives the client-facing identity from an incoming
// session token. Tampered or expired tokens yield ErrUnauthenticated,
// never partial data.
func (s *Service) CurrentSession(token string) (SessionView, error) {
	claims, err := s.signer.VerifySession(token)
	if err != nil {
		return SessionView{}, domain.ErrUnauthenticated()
	}
	if claims.UserID == "" {
		return SessionView{}, domain.ErrUnauthenticated()
	}
	return SessionView{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}
