package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/auth"
	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/store"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

// CreateAPIKey issues an API key for the email in the request body,
// returning the existing key when one was already issued. The email is
// taken from the body, not the verified token; the token subject is logged
// so key management stays attributable.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, links.NewError(links.CodeInvalidArgument))
		return
	}
	if err := validate.Email(req.Email, h.emailMode); err != nil {
		h.writeError(w, err)
		return
	}

	key, err := h.apiKeys.CreateOrGet(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("api key issued",
		zap.String("email", req.Email),
		zap.String("subject", auth.SubjectFromContext(r.Context())))
	writeJSON(w, http.StatusOK, CreateAPIKeyResponse{APIKey: key})
}

// ModifyAPIKey enables or disables the key for the email in the request
// body and confirms the new state in plain text.
func (h *Handler) ModifyAPIKey(w http.ResponseWriter, r *http.Request) {
	var req ModifyAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, links.NewError(links.CodeInvalidArgument))
		return
	}
	if err := validate.Email(req.Email, h.emailMode); err != nil {
		h.writeError(w, err)
		return
	}
	if err := validate.Enabled(req.Enabled); err != nil {
		h.writeError(w, err)
		return
	}

	enabled, err := h.apiKeys.SetEnabled(r.Context(), req.Email, *req.Enabled)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, links.NewError(links.CodeEmailNotFound))
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	h.log.Info("api key toggled",
		zap.String("email", req.Email),
		zap.Bool("enabled", enabled),
		zap.String("subject", auth.SubjectFromContext(r.Context())))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "API key for %s %s.", req.Email, state)
}
