package api

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/metrics"
	"github.com/act-now-coalition/act-now-links/internal/store"
)

// redirectTmpl is the document served for a share link: a meta refresh to
// the destination plus the Open Graph and Twitter Card tags crawlers read.
var redirectTmpl = template.Must(template.New("redirect").Parse(`<!doctype html>
<html>
  <head>
    <meta http-equiv="Refresh" content="0; url='{{.URL}}'" />
    <meta property="og:url" content="{{.URL}}" />
    <meta property="og:title" content="{{.Title}}" />
    <meta property="og:description" content="{{.Description}}" />
    <meta property="og:image" content="{{.ImageURL}}" />
{{- if .ImageWidth}}
    <meta property="og:image:width" content="{{.ImageWidth}}" />
{{- end}}
{{- if .ImageHeight}}
    <meta property="og:image:height" content="{{.ImageHeight}}" />
{{- end}}
    <meta name="twitter:card" content="summary_large_image" />
    <meta name="twitter:title" content="{{.Title}}" />
    <meta name="twitter:description" content="{{.Description}}" />
    <meta name="twitter:image" content="{{.ImageURL}}" />
  </head>
</html>
`))

// Resolve serves the redirect document for a share link id.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	link, err := h.shareLinks.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		metrics.RedirectsTotal.WithLabelValues("miss").Inc()
		h.writeError(w, links.NewError(links.CodeURLNotFound))
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := redirectTmpl.Execute(w, link.Fields()); err != nil {
		h.writeError(w, err)
		return
	}
	metrics.RedirectsTotal.WithLabelValues("hit").Inc()
	metrics.RedirectDuration.Observe(time.Since(start).Seconds())
}
