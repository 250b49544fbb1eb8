package dto

import (
	"strings"

	"github.com/taskvault/auth-service/internal/domain"
)

// -------- Registration --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72,password_strength"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateRequest(r)
}

// -------- Login --------

// Login validation is deliberately loose: a malformed email must take
// the same path as an unknown one, so only presence is checked here.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateRequest(r)
}

// -------- Email verification --------

type VerifyEmailPath struct {
	Token string
}

func (p *VerifyEmailPath) Validate() error {
	p.Token = strings.TrimSpace(p.Token)
	if p.Token == "" {
		return domain.ErrInvalidVerificationLink()
	}
	return nil
}
