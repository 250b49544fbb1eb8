package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taskvault/auth-service/internal/domain"
)

// UserRepo is the in-memory store used by unit tests and the dev
// bootstrap. The single mutex gives it the same atomicity the
// postgres constraints give the real one: create-vs-create on one
// email and consume-vs-consume on one token each have exactly one
// winner.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}
	if u.DisplayName == "" {
		u.DisplayName = domain.DisplayNameFromEmail(u.Email)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrVerificationTokenInvalid()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.byID {
		if u.VerificationToken == token && u.VerifiedAt == nil {
			now := time.Now()
			u.VerifiedAt = &now
			u.VerificationToken = ""
			r.byID[id] = u
			return u, nil
		}
	}
	return domain.User{}, domain.ErrVerificationTokenInvalid()
}
