package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/taskvault/auth-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	consumeErr    error

	consumedTokens []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.consumeErr != nil {
		return domain.User{}, f.consumeErr
	}
	for _, u := range f.byID {
		if u.VerificationToken == token && u.VerifiedAt == nil {
			now := time.Now()
			u.VerifiedAt = &now
			u.VerificationToken = ""
			f.byID[u.ID] = u
			f.byEmail[u.Email] = u
			f.consumedTokens = append(f.consumedTokens, token)
			return u, nil
		}
	}
	return domain.User{}, domain.ErrVerificationTokenInvalid()
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeIssuer struct {
	issueFn func() (string, error)
	n       int
}

func (i *fakeIssuer) Issue() (string, error) {
	if i.issueFn != nil {
		return i.issueFn()
	}
	i.n++
	return fmt.Sprintf("tok-%d", i.n), nil
}

type fakeSigner struct {
	issueFn  func(claims SessionClaims, ttl time.Duration) (string, error)
	verifyFn func(token string) (SessionClaims, error)

	issued []SessionClaims
	ttls   []time.Duration
}

func (s *fakeSigner) IssueSession(claims SessionClaims, ttl time.Duration) (string, error) {
	s.issued = append(s.issued, claims)
	s.ttls = append(s.ttls, ttl)
	if s.issueFn != nil {
		return s.issueFn(claims, ttl)
	}
	return "jwt(" + claims.UserID + ")", nil
}

func (s *fakeSigner) VerifySession(token string) (SessionClaims, error) {
	if s.verifyFn != nil {
		return s.verifyFn(token)
	}
	return SessionClaims{}, errors.New("bad token")
}

type fakePublisher struct {
	publishErr error

	evts []VerificationMailEvent
}

func (p *fakePublisher) PublishVerificationMail(ctx context.Context, evt VerificationMailEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.evts = append(p.evts, evt)
	return nil
}

/*
Service factory for tests
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeIssuer, *fakeSigner, *fakePublisher, *[]auditEntry) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	issuer := &fakeIssuer{}
	signer := &fakeSigner{}
	pub := &fakePublisher{}

	audits := &[]auditEntry{}
	cfg := Config{
		SessionTTL:         30 * 24 * time.Hour,
		VerifyEmailBaseURL: "https://fe/verify-email/",
		MailTimeout:        time.Second,
	}

	svc := NewService(users, hasher, issuer, signer, pub, cfg).
		WithAudit(func(action string, fields map[string]string) {
			cp := map[string]string{}
			for k, v := range fields {
				cp[k] = v
			}
			*audits = append(*audits, auditEntry{action: action, fields: cp})
		})

	if svc == nil {
		t.Fatalf("svc is nil")
	}

	return svc, users, hasher, issuer, signer, pub, audits
}

/*
Small assertions
*/

func domainCode(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func requireDomainCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	got := domainCode(err)
	if got != wantCode {
		t.Fatalf("expected domain code %q, got %q (err=%v)", wantCode, got, err)
	}
}

func lastAudit(audits *[]auditEntry) (auditEntry, bool) {
	if audits == nil || len(*audits) == 0 {
		return auditEntry{}, false
	}
	return (*audits)[len(*audits)-1], true
}

func requireAuditAction(t *testing.T, audits *[]auditEntry, wantAction string) auditEntry {
	t.Helper()
	e, ok := lastAudit(audits)
	if !ok {
		t.Fatalf("expected audit entry, got none")
	}
	if e.action != wantAction {
		t.Fatalf("expected audit action %q, got %q", wantAction, e.action)
	}
	return e
}

func verifiedAt(tm time.Time) *time.Time { return &tm }

func testUser(id, email string) domain.User {
	return domain.User{
		ID:          id,
		Email:       email,
		DisplayName: domain.DisplayNameFromEmail(email),
	}
}
