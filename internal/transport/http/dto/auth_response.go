package dto

import (
	"github.com/taskvault/auth-service/internal/application/auth"
	"github.com/taskvault/auth-service/internal/domain"
)

// UserView is the public shape of an account. Password hashes and
// verification tokens never leave the service.
type UserView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:       u.ID,
		Name:     u.DisplayName,
		Email:    u.Email,
		Verified: u.Verified(),
	}
}

// SessionUserView is the identity re-derived from a session token.
type SessionUserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewSessionUserView(v auth.SessionView) SessionUserView {
	return SessionUserView{ID: v.ID, Name: v.Name, Email: v.Email}
}

type RegisterData struct {
	Message string `json:"message"`
	// Warning is set when the account exists but the verification mail
	// was not accepted by the transport; the client should offer a
	// resend.
	Warning string   `json:"warning,omitempty"`
	User    UserView `json:"user"`
}

type LoginData struct {
	User UserView `json:"user"`
}

// SessionData wraps a nullable user: {"user": null} when the request
// carries no valid session.
type SessionData struct {
	User *SessionUserView `json:"user"`
}

type MeData struct {
	User SessionUserView `json:"user"`
}
