// Package api wires the HTTP surface: registration, resolution, by-url
// lookup, screenshots, and API key management.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/auth"
	"github.com/act-now-coalition/act-now-links/internal/store"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

// Capturer produces a PNG of the share-image region of a page.
type Capturer interface {
	Capture(ctx context.Context, pageURL string) ([]byte, error)
}

// Deps holds everything required to build the router.
type Deps struct {
	Logger      *zap.Logger
	BaseURL     string
	ShareLinks  *store.ShareLinkStore
	APIKeys     *store.APIKeyStore
	Auth        *auth.Middleware
	Screenshots Capturer
	EmailMode   validate.EmailMode
}

// Handler carries the route implementations.
type Handler struct {
	log         *zap.Logger
	baseURL     string
	shareLinks  *store.ShareLinkStore
	apiKeys     *store.APIKeyStore
	screenshots Capturer
	emailMode   validate.EmailMode
}

// NewRouter builds the chi router with the gate ordering each route
// declares: authorization first, then field validation, then the handler.
func NewRouter(deps Deps) chi.Router {
	h := &Handler{
		log:         deps.Logger,
		baseURL:     deps.BaseURL,
		shareLinks:  deps.ShareLinks,
		apiKeys:     deps.APIKeys,
		screenshots: deps.Screenshots,
		emailMode:   deps.EmailMode,
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.With(deps.Auth.RequireAPIKey).Post("/registerUrl", h.RegisterURL)
	r.Get("/go/{id}", h.Resolve)
	r.Get("/screenshot", h.Screenshot)
	r.Get("/shareLinksByUrl", h.ShareLinksByURL)

	r.Route("/auth", func(r chi.Router) {
		r.Use(deps.Auth.RequireIDToken)
		r.Post("/createApiKey", h.CreateAPIKey)
		r.Post("/modifyApiKey", h.ModifyAPIKey)
	})

	return r
}

// ShareLinkURL returns the public short URL for an id.
func (h *Handler) ShareLinkURL(id string) string {
	return h.baseURL + "/go/" + id
}
