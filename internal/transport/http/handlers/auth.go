package http_handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/auth-service/internal/application/auth"
	"github.com/taskvault/auth-service/internal/domain"
	"github.com/taskvault/auth-service/internal/infrastructure/security"
	"github.com/taskvault/auth-service/internal/logger"
	"github.com/taskvault/auth-service/internal/transport/http/dto"
	"github.com/taskvault/auth-service/internal/transport/http/middleware"
	"github.com/taskvault/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	sessionTTL    time.Duration
	secureCookies bool
	loginRedirect string
}

func NewAuthHandler(svc *auth.Service, sessionTTL time.Duration, secureCookies bool, loginRedirect string) *AuthHandler {
	if loginRedirect == "" {
		loginRedirect = "/login"
	}
	return &AuthHandler{
		svc:           svc,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		loginRedirect: loginRedirect,
	}
}

// Register creates an unverified account. No session is issued here:
// the user verifies their email first, then logs in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			middleware.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_registered")

	data := dto.RegisterData{
		Message: "account created, check your email to verify your address",
		User:    dto.NewUserView(res.User),
	}
	if res.MailAccepted {
		middleware.RegistrationsTotal.WithLabelValues("success").Inc()
	} else {
		middleware.RegistrationsTotal.WithLabelValues("mail_not_accepted").Inc()
		data.Warning = "verification email could not be sent yet, retry shortly"
	}

	response.Created(w, data)
}

// VerifyEmail burns the token from the URL path and redirects to the
// login page with a verified flag on success. Failures render inline.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	path := dto.VerifyEmailPath{Token: chi.URLParam(r, "token")}
	if err := path.Validate(); err != nil {
		middleware.VerificationsTotal.WithLabelValues("invalid_token").Inc()
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.VerifyEmail(r.Context(), path.Token)
	if err != nil {
		middleware.VerificationsTotal.WithLabelValues("invalid_token").Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.VerificationsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("email_verified")

	http.Redirect(w, r, h.loginRedirect+"?verified=true", http.StatusSeeOther)
}

// Login authenticates the credentials, issues a session token and sets
// it as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case domain.Is(err, "email_not_verified"):
			middleware.LoginAttemptsTotal.WithLabelValues("email_not_verified").Inc()
		default:
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	token, err := h.svc.IssueSession(u)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user_logged_in")

	security.SetSessionCookie(w, token, h.sessionTTL, h.secureCookies)
	response.OK(w, dto.LoginData{User: dto.NewUserView(u)})
}

// Session re-derives the identity from the session cookie. Anonymous
// requests get {"user": null}, not an error: the frontend polls this
// endpoint to decide what to render.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	raw, err := security.ReadSessionCookie(r)
	if err != nil || raw == "" {
		response.OK(w, dto.SessionData{User: nil})
		return
	}

	view, err := h.svc.CurrentSession(raw)
	if err != nil {
		response.OK(w, dto.SessionData{User: nil})
		return
	}

	sv := dto.NewSessionUserView(view)
	response.OK(w, dto.SessionData{User: &sv})
}

// Logout clears the cookie. The token itself stays valid until expiry;
// there is no server-side revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w, h.secureCookies)
	response.NoContent(w)
}

// Me returns the identity injected by the auth middleware. Mounted
// behind RequireUser, so the identity is always present.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	v, _ := middleware.IdentityFromContext(r.Context())
	response.OK(w, dto.MeData{User: dto.NewSessionUserView(v)})
}
