package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/metrics"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

// RegisterURL registers a share link for the posted field set and returns
// its short URL. Registration is idempotent: the id is derived from the
// canonicalized fields, the write is conditional on the id not existing,
// and the response is the same whether or not this request created the
// record.
func (h *Handler) RegisterURL(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, links.NewError(links.CodeInvalidArgument))
		return
	}

	if err := validate.ShareLinkFields(req.ShareLinkFields); err != nil {
		h.writeError(w, err)
		return
	}

	id := links.ComputeID(links.Canonicalize(req.ShareLinkFields))
	created, err := h.shareLinks.Create(r.Context(), id, req.ShareLinkFields)
	if err != nil {
		h.writeError(w, err)
		return
	}

	outcome := "existing"
	if created {
		outcome = "created"
		h.log.Info("share link created", zap.String("id", id), zap.String("url", req.URL))
	}
	metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusOK, RegisterResponse{URL: h.ShareLinkURL(id)})
}
