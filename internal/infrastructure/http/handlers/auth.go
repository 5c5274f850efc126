package handlers

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/auth"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// CookieConfig describes the session cookie issued on login/signup
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandlers handles the browser form flows: signup, login, logout and
// the session check used by the frontend.
type AuthHandlers struct {
	authService *auth.Service
	cookie      CookieConfig
	logger      *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService *auth.Service, cookie CookieConfig, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Signup handles POST /signup
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	h.credentialFlow(w, r, "signup", h.authService.Signup)
}

// Login handles POST /login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	h.credentialFlow(w, r, "login", h.authService.Login)
}

// credentialFlow runs the shared form flow for signup and login: parse the
// form, invoke the service, set the session cookie and redirect. Failures
// redirect back to the auth form carrying a human-readable message.
func (h *AuthHandlers) credentialFlow(
	w http.ResponseWriter,
	r *http.Request,
	form string,
	op func(ctx context.Context, email, password string) (string, error),
) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, form, apperrors.NewValidationError("Invalid form submission"))
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := op(r.Context(), email, password)
	if err != nil {
		redirectWithError(w, r, form, err)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/index.html", http.StatusSeeOther)
}

// Logout handles POST /logout; it destroys the session unconditionally
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/auth.html", http.StatusSeeOther)
}

// CheckSession handles GET /check-session; it always answers 200
func (h *AuthHandlers) CheckSession(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		token = cookie.Value
	}

	info := h.authService.CheckSession(r.Context(), token)
	writeJSON(w, h.logger, http.StatusOK, info)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirectWithError(w http.ResponseWriter, r *http.Request, form string, err error) {
	appErr := apperrors.Wrap(err, "Server error occurred")
	target := "/auth.html?form=" + form + "&error=" + url.QueryEscape(appErr.Message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
