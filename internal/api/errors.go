package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/links"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError translates any failure into a taxonomy response. Classified
// errors pass through with their status; anything else becomes
// UNEXPECTED_ERROR with a correlation id that is logged alongside the
// internal cause and surfaced to the client, nothing more.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var sle *links.ShareLinkError
	if !errors.As(err, &sle) {
		sle = links.NewUnexpectedError(err)
	}
	if sle.CorrelationID != "" {
		h.log.Error("unexpected error",
			zap.String("error_id", sle.CorrelationID),
			zap.Error(sle.Internal))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(sle.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorBody{Error: sle.Message, Code: sle.Code.String()})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
