package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/links"
	"github.com/act-now-coalition/act-now-links/internal/store"
)

type contextKey int

// subjectKey carries the verified token subject through the request context.
const subjectKey contextKey = iota

// SubjectFromContext returns the verified token subject, or "" when the
// request did not pass the bearer gate.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

// maxBodyPeek bounds how much of a request body the API key middleware
// will read while looking for a body-level apiKey field.
const maxBodyPeek = 1 << 20

// Middleware holds the authorization gates applied in front of protected
// routes. Gates run before field validation, which runs before handlers.
type Middleware struct {
	keys     *store.APIKeyStore
	verifier TokenVerifier
	log      *zap.Logger
}

// NewMiddleware creates the authorization middleware set.
func NewMiddleware(keys *store.APIKeyStore, verifier TokenVerifier, log *zap.Logger) *Middleware {
	return &Middleware{keys: keys, verifier: verifier, log: log}
}

// RequireAPIKey rejects the request with INVALID_API_KEY unless an enabled
// API key is presented in the apiKey query parameter or JSON body field.
// The handler never runs on rejection.
func (m *Middleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.URL.Query().Get("apiKey")
		if apiKey == "" {
			apiKey = m.apiKeyFromBody(r)
		}

		valid, err := m.keys.IsValid(r.Context(), apiKey)
		if err != nil {
			m.writeError(w, links.NewUnexpectedError(err))
			return
		}
		if !valid {
			m.writeError(w, links.NewError(links.CodeInvalidAPIKey))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIDToken rejects the request with INVALID_TOKEN unless the
// Authorization header carries a bearer token the verifier accepts. The
// verified subject is stored in the context; it is not cross-checked
// against any email in the request body.
func (m *Middleware) RequireIDToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			m.writeError(w, links.NewError(links.CodeInvalidToken))
			return
		}

		subject, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			m.log.Info("bearer token rejected", zap.Error(err))
			m.writeError(w, links.NewError(links.CodeInvalidToken))
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// apiKeyFromBody peeks at a JSON request body for an apiKey field and
// restores the body so the handler can decode it again.
func (m *Middleware) apiKeyFromBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyPeek))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.APIKey
}

// writeError writes a taxonomy error as JSON. Unexpected errors are logged
// with their correlation id before the sanitized message goes out.
func (m *Middleware) writeError(w http.ResponseWriter, e *links.ShareLinkError) {
	if e.CorrelationID != "" {
		m.log.Error("unexpected error in auth gate",
			zap.String("error_id", e.CorrelationID), zap.Error(e.Internal))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": e.Message,
		"code":  e.Code.String(),
	})
}
