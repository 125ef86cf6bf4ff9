package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/engine"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/views"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// InteractionHandler drives the engine's login and consent prompts.
type InteractionHandler struct {
	Engine    engine.Provider
	Directory backend.Directory
}

// Show renders the page for the interaction's current prompt.
func (h *InteractionHandler) Show(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	httpx.NoCache(w)

	details, err := h.Engine.InteractionDetails(r.Context(), uid)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch details.Prompt.Name {
	case engine.PromptLogin:
		views.Render(w, http.StatusOK, views.LoginPage(views.LoginData{
			UID:      uid,
			ClientID: details.ClientID(),
		}))
	case engine.PromptConsent:
		views.Render(w, http.StatusOK, views.ConsentPage(consentData(uid, details)))
	default:
		views.Render(w, http.StatusBadRequest, views.ErrorPage(views.ErrorData{
			Error:       "invalid_request",
			Description: "Unsupported interaction prompt.",
		}))
	}
}

// Login checks the submitted credentials and finishes the login prompt.
// Every failure re-renders the form with the same message.
func (h *InteractionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	uid := chi.URLParam(r, "uid")
	httpx.NoCache(w)

	details, err := h.Engine.InteractionDetails(ctx, uid)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if details.Prompt.Name != engine.PromptLogin {
		views.Render(w, http.StatusBadRequest, views.ErrorPage(views.ErrorData{
			Error:       "invalid_request",
			Description: "This interaction is not waiting for a login.",
		}))
		return
	}

	if err := r.ParseForm(); err != nil {
		h.rejectLogin(w, uid, details, "")
		return
	}

	email, password, err := service.SanitizeCredentials(r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		h.rejectLogin(w, uid, details, email)
		return
	}

	account, err := h.Directory.Validate(ctx, email, password)
	if errors.Is(err, domain.ErrAccountNotFound) {
		log.Info("interaction login rejected", slog.String("uid", uid))
		h.rejectLogin(w, uid, details, email)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	redirectTo, err := h.Engine.InteractionFinished(ctx, uid, engine.Result{
		Login: &engine.LoginResult{AccountID: account.ID},
	}, false)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	log.Info("interaction login accepted", slog.String("uid", uid), slog.String("account_id", account.ID))
	httpx.SeeOther(w, r, redirectTo)
}

// Confirm grants whatever the consent prompt reports as missing.
func (h *InteractionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")
	httpx.NoCache(w)

	details, err := h.Engine.InteractionDetails(ctx, uid)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	accountID := details.AccountID()
	if details.Prompt.Name != engine.PromptConsent || accountID == "" {
		views.Render(w, http.StatusBadRequest, views.ErrorPage(views.ErrorData{
			Error:       "invalid_request",
			Description: "This interaction is not waiting for consent.",
		}))
		return
	}

	grant := engine.Grant{AccountID: accountID, ClientID: details.ClientID()}
	if details.GrantID != "" {
		existing, err := h.Engine.FindGrant(ctx, details.GrantID)
		switch {
		case err == nil:
			grant = existing
		case errors.Is(err, engine.ErrGrantNotFound):
			slogx.FromContext(ctx).Warn("grant referenced by interaction is gone; starting a new one",
				slog.String("grant_id", details.GrantID))
		default:
			h.fail(w, r, err)
			return
		}
	}

	grant = service.MergeGrant(grant, details.Prompt.Details)
	grantID, err := h.Engine.SaveGrant(ctx, grant)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	redirectTo, err := h.Engine.InteractionFinished(ctx, uid, engine.Result{
		Consent: &engine.ConsentResult{GrantID: grantID},
	}, true)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.SeeOther(w, r, redirectTo)
}

// Abort finishes the interaction with access_denied.
func (h *InteractionHandler) Abort(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	redirectTo, err := h.Engine.InteractionFinished(r.Context(), uid, engine.Result{
		Error:            "access_denied",
		ErrorDescription: "End-User aborted interaction",
	}, false)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.SeeOther(w, r, redirectTo)
}

// Error is the terminal page the engine sends the browser to on failure.
func (h *InteractionHandler) Error(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	httpx.NoCache(w)
	views.Render(w, http.StatusOK, views.ErrorPage(views.ErrorData{
		Error:       q.Get("error"),
		Description: q.Get("error_description"),
		State:       q.Get("state"),
	}))
}

func (h *InteractionHandler) rejectLogin(w http.ResponseWriter, uid string, details engine.Interaction, email string) {
	views.Render(w, http.StatusUnauthorized, views.LoginPage(views.LoginData{
		UID:      uid,
		ClientID: details.ClientID(),
		Email:    email,
		Error:    domain.ErrInvalidCredentials().Message,
	}))
}

func (h *InteractionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, engine.ErrInteractionNotFound) {
		views.Render(w, http.StatusBadRequest, views.ErrorPage(views.ErrorData{
			Error:       "session_expired",
			Description: "This sign-in request has expired. Please start again from the application.",
		}))
		return
	}

	slogx.FromContext(r.Context()).Error("interaction failed", slog.Any("error", err))
	views.Render(w, http.StatusInternalServerError, views.ErrorPage(views.ErrorData{
		Error:       "server_error",
		Description: "An unexpected error occurred.",
	}))
}

func consentData(uid string, i engine.Interaction) views.ConsentData {
	return views.ConsentData{
		UID:       uid,
		ClientID:  i.ClientID(),
		AccountID: i.AccountID(),
		Scopes:    i.Prompt.Details.MissingOIDCScope,
		Claims:    i.Prompt.Details.MissingOIDCClaims,
		Resources: i.Prompt.Details.MissingResourceScopes,
	}
}
