package api

import "github.com/act-now-coalition/act-now-links/internal/links"

// RegisterRequest is the POST /registerUrl body. The apiKey field is
// consumed by the authorization gate and ignored here.
type RegisterRequest struct {
	links.ShareLinkFields
	APIKey string `json:"apiKey,omitempty"`
}

// RegisterResponse carries the short URL for the registered field set.
type RegisterResponse struct {
	URL string `json:"url"`
}

// ShareLinksByURLResponse maps each matching short URL to its registered
// fields. Empty when no share links exist for the queried destination.
type ShareLinksByURLResponse struct {
	URLs map[string]links.ShareLinkFields `json:"urls"`
}

// CreateAPIKeyRequest is the POST /auth/createApiKey body.
type CreateAPIKeyRequest struct {
	Email string `json:"email"`
}

// CreateAPIKeyResponse returns the issued (or pre-existing) key.
type CreateAPIKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// ModifyAPIKeyRequest is the POST /auth/modifyApiKey body. Enabled is a
// pointer so a missing or non-boolean value is distinguishable and
// rejected rather than defaulting to false.
type ModifyAPIKeyRequest struct {
	Email   string `json:"email"`
	Enabled *bool  `json:"enabled"`
}
