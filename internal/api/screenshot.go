package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/metrics"
	"github.com/act-now-coalition/act-now-links/internal/screenshot"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

// Screenshot captures the share-image region of the page named by the url
// query parameter and serves it as a PNG. Responses are cacheable for 24h
// unless the no-cache parameter is present.
func (h *Handler) Screenshot(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if !validate.IsValidURL(url) {
		h.writeError(w, links.NewError(links.CodeInvalidURL))
		return
	}

	img, err := h.screenshots.Capture(r.Context(), url)
	if err != nil {
		outcome := "error"
		if errors.Is(err, screenshot.ErrTimeout) {
			outcome = "timeout"
		}
		metrics.ScreenshotsTotal.WithLabelValues(outcome).Inc()
		h.log.Warn("screenshot failed", zap.String("url", url), zap.Error(err))
		h.writeError(w, links.NewUnexpectedError(err))
		return
	}
	metrics.ScreenshotsTotal.WithLabelValues("ok").Inc()

	if !r.URL.Query().Has("no-cache") {
		// Let the CDN and the browser cache for 24hrs.
		w.Header().Set("Cache-Control", "public, max-age=86400")
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}
