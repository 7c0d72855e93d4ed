package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/act-now-coalition/act-now-links/internal/api"
	"github.com/act-now-coalition/act-now-links/internal/links"
)

func registerBody(fields links.ShareLinkFields, apiKey string) *bytes.Buffer {
	b, _ := json.Marshal(api.RegisterRequest{ShareLinkFields: fields, APIKey: apiKey})
	return bytes.NewBuffer(b)
}

func doRegister(t *testing.T, env *testEnv, fields links.ShareLinkFields, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/registerUrl", registerBody(fields, apiKey))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterURL_CreatesShareLink(t *testing.T) {
	env := newTestEnv(t)
	key := seedAPIKey(t, env)

	fields := links.ShareLinkFields{
		URL:         "https://www.covidactnow.org",
		Title:       "Covid Act Now",
		Description: "See how Covid is spreading in your community.",
	}
	rec := doRegister(t, env, fields, key)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp api.RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	wantID := links.ComputeID(links.Canonicalize(fields))
	if resp.URL != testBaseURL+"/go/"+wantID {
		t.Errorf("url = %q, want %q", resp.URL, testBaseURL+"/go/"+wantID)
	}

	link, err := env.ShareLinks.GetByID(context.Background(), wantID)
	if err != nil {
		t.Fatalf("record missing after registration: %v", err)
	}
	if link.Fields() != fields {
		t.Errorf("stored fields = %+v, want %+v", link.Fields(), fields)
	}
}

func TestRegisterURL_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	key := seedAPIKey(t, env)
	fields := links.ShareLinkFields{URL: "https://www.covidactnow.org"}

	rec1 := doRegister(t, env, fields, key)
	rec2 := doRegister(t, env, fields, key)
	if rec1.Code != http.StatusOK || rec2.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d, want 200, 200", rec1.Code, rec2.Code)
	}
	// Identical responses: creation vs. pre-existing is invisible to callers.
	if rec1.Body.String() != rec2.Body.String() {
		t.Errorf("responses differ:\n first: %s\nsecond: %s", rec1.Body.String(), rec2.Body.String())
	}

	matches, err := env.ShareLinks.ListByURL(context.Background(), fields.URL)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("records = %d, want 1", len(matches))
	}
}

func TestRegisterURL_ValidationGating(t *testing.T) {
	env := newTestEnv(t)
	key := seedAPIKey(t, env)

	tests := []struct {
		name   string
		fields links.ShareLinkFields
	}{
		{"missing url", links.ShareLinkFields{Title: "no url"}},
		{"bad scheme", links.ShareLinkFields{URL: "ftp://bad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRegister(t, env, tt.fields, key)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "INVALID_URL") {
				t.Errorf("body %q missing INVALID_URL", rec.Body.String())
			}

			// No record may exist at the id the fields would have produced.
			id := links.ComputeID(links.Canonicalize(tt.fields))
			if _, err := env.ShareLinks.GetByID(context.Background(), id); err == nil {
				t.Error("record created despite failed validation")
			}
		})
	}
}

func TestRegisterURL_RequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)

	rec := doRegister(t, env, links.ShareLinkFields{URL: "https://example.com"}, "wrong-key")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INVALID_API_KEY") {
		t.Errorf("body %q missing INVALID_API_KEY", rec.Body.String())
	}
}

func TestRegisterURL_MalformedBody(t *testing.T) {
	env := newTestEnv(t)
	key := seedAPIKey(t, env)

	req := httptest.NewRequest("POST", "/registerUrl?apiKey="+key,
		strings.NewReader(`{"url": "https://example.com", "imageHeight": "tall"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INVALID_ARGUMENT") {
		t.Errorf("body %q missing INVALID_ARGUMENT", rec.Body.String())
	}
}
