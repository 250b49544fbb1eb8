package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueSession_CarriesIdentitySnapshot(t *testing.T) {
	t.Parallel()

	svc, _, _, _, signer, _, _ := newSvcForTest(t)
	u := verifiedPasswordUser("u1", "e@x.com", "pw")
	u.DisplayName = "Ada"

	tok, err := svc.IssueSession(u)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token")
	}

	if len(signer.issued) != 1 {
		t.Fatalf("expected one signer call, got %d", len(signer.issued))
	}
	claims := signer.issued[0]
	if claims.UserID != "u1" || claims.Name != "Ada" || claims.Email != "e@x.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if signer.ttls[0] != 30*24*time.Hour {
		t.Fatalf("expected configured TTL, got %v", signer.ttls[0])
	}
}

func TestIssueSession_SignerError_TokenSignFailed(t *testing.T) {
	t.Parallel()

	svc, _, _, _, signer, _, _ := newSvcForTest(t)
	signer.issueFn = func(SessionClaims, time.Duration) (string, error) {
		return "", errors.New("hsm offline")
	}

	_, err := svc.IssueSession(verifiedPasswordUser("u1", "e@x.com", "pw"))
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "token_sign_failed")
}

func TestCurrentSession_BadToken_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.CurrentSession("garbage")
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "unauthenticated")
}

func TestCurrentSession_EmptySubject_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, _, _, _, signer, _, _ := newSvcForTest(t)
	signer.verifyFn = func(string) (SessionClaims, error) {
		return SessionClaims{Name: "x"}, nil
	}

	_, err := svc.CurrentSession("tok")
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "unauthenticated")
}

func TestCurrentSession_ValidToken_ReturnsView(t *testing.T) {
	t.Parallel()

	svc, _, _, _, signer, _, _ := newSvcForTest(t)
	signer.verifyFn = func(tok string) (SessionClaims, error) {
		if tok != "tok-1" {
			return SessionClaims{}, errors.New("wrong token")
		}
		return SessionClaims{UserID: "u1", Name: "Ada", Email: "e@x.com"}, nil
	}

	view, err := svc.CurrentSession("tok-1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if view.ID != "u1" || view.Name != "Ada" || view.Email != "e@x.com" {
		t.Fatalf("unexpected view %+v", view)
	}
}
