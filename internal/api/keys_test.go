package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/act-now-coalition/act-now-links/internal/api"
)

func doAuthPost(t *testing.T, env *testEnv, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAPIKey(t *testing.T) {
	env := newTestEnv(t)

	rec := doAuthPost(t, env, "/auth/createApiKey", `{"email":"a@b.com"}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp api.CreateAPIKeyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.APIKey == "" {
		t.Fatal("empty api key")
	}

	// Second call returns the same key.
	rec2 := doAuthPost(t, env, "/auth/createApiKey", `{"email":"a@b.com"}`, testToken)
	var resp2 api.CreateAPIKeyResponse
	if err := json.NewDecoder(rec2.Body).Decode(&resp2); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if resp2.APIKey != resp.APIKey {
		t.Errorf("second key = %q, want %q", resp2.APIKey, resp.APIKey)
	}

	ok, err := env.APIKeys.IsValid(context.Background(), resp.APIKey)
	if err != nil || !ok {
		t.Errorf("IsValid(issued key) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestCreateAPIKey_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := doAuthPost(t, env, "/auth/createApiKey", `{"email":"not-an-email"}`, testToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INVALID_EMAIL") {
		t.Errorf("body %q missing INVALID_EMAIL", rec.Body.String())
	}
}

func TestCreateAPIKey_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := doAuthPost(t, env, "/auth/createApiKey", `{"email":"a@b.com"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body: %s", rec.Code, rec.Body.String())
	}
	rec = doAuthPost(t, env, "/auth/createApiKey", `{"email":"a@b.com"}`, "forged-token")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body: %s", rec.Code, rec.Body.String())
	}
}

func TestModifyAPIKey(t *testing.T) {
	env := newTestEnv(t)

	var created api.CreateAPIKeyResponse
	rec := doAuthPost(t, env, "/auth/createApiKey", `{"email":"a@b.com"}`, testToken)
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doAuthPost(t, env, "/auth/modifyApiKey", `{"email":"a@b.com","enabled":false}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "disabled") {
		t.Errorf("body %q missing confirmation", rec.Body.String())
	}
	if ok, _ := env.APIKeys.IsValid(context.Background(), created.APIKey); ok {
		t.Error("key still valid after disable")
	}

	rec = doAuthPost(t, env, "/auth/modifyApiKey", `{"email":"a@b.com","enabled":true}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-enable status = %d, want 200", rec.Code)
	}
	if ok, _ := env.APIKeys.IsValid(context.Background(), created.APIKey); !ok {
		t.Error("key invalid after re-enable")
	}
}

func TestModifyAPIKey_Failures(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown email", `{"email":"nobody@example.com","enabled":false}`,
			http.StatusBadRequest, "EMAIL_NOT_FOUND"},
		{"invalid email", `{"email":"nope","enabled":false}`,
			http.StatusBadRequest, "INVALID_EMAIL"},
		{"missing enabled", `{"email":"a@b.com"}`,
			http.StatusBadRequest, "VALIDATION_ERROR"},
		{"non-boolean enabled", `{"email":"a@b.com","enabled":"yes"}`,
			http.StatusBadRequest, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthPost(t, env, "/auth/modifyApiKey", tt.body, testToken)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantCode) {
				t.Errorf("body %q missing %s", rec.Body.String(), tt.wantCode)
			}
		})
	}
}
