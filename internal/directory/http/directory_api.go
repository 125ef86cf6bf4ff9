package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// maxValidateBody bounds the validate request body.
const maxValidateBody = 4 << 10

// DirectoryAPIHandler exposes the configured directory over the same wire
// contract the remote backend consumes.
type DirectoryAPIHandler struct {
	Directory backend.Directory
}

// Count godoc
//
//	@Summary		Count active accounts
//	@Description	Returns the number of active accounts in the directory. Unreachable sources report 0.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{object}	directorysdk.CountResponse
//	@Failure		401	{object}	directorysdk.ErrorResponse	"Missing or invalid bearer token"
//	@Security		BearerAuth
//	@Router			/api/v1/directory/count [get].
func (h *DirectoryAPIHandler) Count(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, directorysdk.CountResponse{Count: h.Directory.Count(r.Context())})
}

// Find godoc
//
//	@Summary		Find an account
//	@Description	Resolves an account by id, falling back to an email lookup when the id contains @.
//	@Description	The email query parameter is accepted on /find for lookups by address alone.
//	@Tags			Directory
//	@Produce		json
//	@Param			id		path		string	false	"Account id or email"
//	@Param			email	query		string	false	"Account email"
//	@Success		200		{object}	map[string]interface{}		"Account claims"
//	@Failure		400		{object}	directorysdk.ErrorResponse	"Missing id"
//	@Failure		401		{object}	directorysdk.ErrorResponse	"Missing or invalid bearer token"
//	@Failure		404		{object}	directorysdk.ErrorResponse	"Unknown account"
//	@Failure		500		{object}	directorysdk.ErrorResponse	"Directory unavailable"
//	@Security		BearerAuth
//	@Router			/api/v1/directory/find/{id} [get].
func (h *DirectoryAPIHandler) Find(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("email")
	}
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "id or email is required")
		return
	}

	account, err := h.Directory.Find(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		writeJSONError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("directory find failed", slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "directory unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, account.Claims())
}

// Validate godoc
//
//	@Summary		Validate credentials
//	@Description	Checks an email and password. Unknown accounts and wrong passwords are indistinguishable.
//	@Tags			Directory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		directorysdk.ValidateRequest	true	"Credentials"
//	@Success		200		{object}	directorysdk.AccountResponse
//	@Failure		400		{object}	directorysdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	directorysdk.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	directorysdk.ErrorResponse	"Directory unavailable"
//	@Security		BearerAuth
//	@Router			/api/v1/directory/validate [post].
func (h *DirectoryAPIHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req directorysdk.ValidateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxValidateBody)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	email, password, err := service.SanitizeCredentials(req.Email, req.Password)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials().Message)
		return
	}

	account, err := h.Directory.Validate(ctx, email, password)
	if errors.Is(err, domain.ErrAccountNotFound) {
		writeJSONError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials().Message)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("directory validate failed", slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "directory unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, directorysdk.AccountResponse{User: account.Claims()})
}
