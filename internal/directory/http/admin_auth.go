package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/internal/directory/views"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

const adminCookieName = "directory_admin"

// AdminAuth signs administrators in against the directory and guards the
// console with an opaque session cookie.
type AdminAuth struct {
	Directory    backend.Directory
	Sessions     session.Store
	SecureCookie bool
}

// Require rejects requests without a live admin session. The session's
// username is made available through httpx.SubjectFromContext.
func (a *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cookie, err := r.Cookie(adminCookieName)
		if err != nil || cookie.Value == "" {
			a.unauthenticated(w, r)
			return
		}

		sess, err := a.Sessions.Get(ctx, cookie.Value)
		if errors.Is(err, session.ErrNotFound) {
			a.clearCookie(w)
			a.unauthenticated(w, r)
			return
		}
		if err != nil {
			slogx.FromContext(ctx).Error("failed to load admin session", slog.Any("error", err))
			adminFailed(w, r, err)
			return
		}

		ctx = httpx.WithSubject(ctx, sess.Username)
		ctx = slogx.With(ctx, "admin", sess.Username)
		httpx.NoCache(w)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AdminAuth) LoginForm(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	views.Render(w, http.StatusOK, views.AdminLoginPage("", ""))
}

// Login accepts only accounts holding the admin role. Every rejection shows
// the same message.
func (a *AdminAuth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	httpx.NoCache(w)

	if err := r.ParseForm(); err != nil {
		a.rejectLogin(w, "")
		return
	}

	email, password, err := service.SanitizeCredentials(r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		a.rejectLogin(w, email)
		return
	}

	account, err := a.Directory.Validate(ctx, email, password)
	if errors.Is(err, domain.ErrAccountNotFound) {
		log.Info("admin login rejected")
		a.rejectLogin(w, email)
		return
	}
	if err != nil {
		log.Error("admin login failed", slog.Any("error", err))
		views.Render(w, http.StatusInternalServerError, views.AdminLoginPage(email, "An unexpected error occurred."))
		return
	}
	if !account.HasRole(domain.RoleAdmin) {
		log.Warn("admin login by account without admin role", slog.String("account_id", account.ID))
		a.rejectLogin(w, email)
		return
	}

	token, err := a.Sessions.Create(ctx, session.Session{Username: email, AccountID: account.ID})
	if err != nil {
		log.Error("failed to create admin session", slog.Any("error", err))
		views.Render(w, http.StatusInternalServerError, views.AdminLoginPage(email, "An unexpected error occurred."))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/directory",
		HttpOnly: true,
		Secure:   a.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	log.Info("admin signed in", slog.String("account_id", account.ID))
	httpx.SeeOther(w, r, "/directory")
}

func (a *AdminAuth) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(adminCookieName); err == nil && cookie.Value != "" {
		if err := a.Sessions.Delete(r.Context(), cookie.Value); err != nil {
			slogx.FromContext(r.Context()).Warn("failed to delete admin session", slog.Any("error", err))
		}
	}
	a.clearCookie(w)
	httpx.SeeOther(w, r, "/directory/login")
}

func (a *AdminAuth) rejectLogin(w http.ResponseWriter, email string) {
	views.Render(w, http.StatusUnauthorized, views.AdminLoginPage(email, domain.ErrInvalidCredentials().Message))
}

func (a *AdminAuth) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		writeJSONError(w, http.StatusUnauthorized, "admin session required")
		return
	}
	httpx.SeeOther(w, r, "/directory/login")
}

func (a *AdminAuth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/directory",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
