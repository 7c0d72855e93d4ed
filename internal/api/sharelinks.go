package api

import (
	"net/http"

	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

// ShareLinksByURL returns every registered share link for a destination
// URL, keyed by short URL. No matches is a 200 with an empty mapping; only
// a malformed url parameter is an error.
func (h *Handler) ShareLinksByURL(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if !validate.IsValidURL(url) {
		h.writeError(w, links.NewError(links.CodeInvalidURL))
		return
	}

	matches, err := h.shareLinks.ListByURL(r.Context(), url)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := ShareLinksByURLResponse{URLs: make(map[string]links.ShareLinkFields, len(matches))}
	for _, link := range matches {
		resp.URLs[h.ShareLinkURL(link.ID)] = link.Fields()
	}
	writeJSON(w, http.StatusOK, resp)
}
