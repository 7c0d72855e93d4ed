package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/act-now-coalition/act-now-links/internal/api"
	"github.com/act-now-coalition/act-now-links/internal/auth"
	"github.com/act-now-coalition/act-now-links/internal/store"
	"github.com/act-now-coalition/act-now-links/internal/testutil"
	"github.com/act-now-coalition/act-now-links/internal/validate"
)

const (
	testBaseURL = "https://links.test"
	testToken   = "valid-id-token"
)

// fakeCapturer returns canned bytes or a canned error instead of driving a
// browser.
type fakeCapturer struct {
	img []byte
	err error
}

func (f *fakeCapturer) Capture(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

// testEnv wires the full router over an in-memory database.
type testEnv struct {
	Router     http.Handler
	ShareLinks *store.ShareLinkStore
	APIKeys    *store.APIKeyStore
	Capturer   *fakeCapturer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.NewTestDB(t)

	shareLinks := store.NewShareLinkStore(conn)
	apiKeys := store.NewAPIKeyStore(conn)
	verifier := auth.StaticVerifier{testToken: "staff@covidactnow.org"}
	log := zap.NewNop()
	capturer := &fakeCapturer{img: []byte("png-bytes")}

	router := api.NewRouter(api.Deps{
		Logger:      log,
		BaseURL:     testBaseURL,
		ShareLinks:  shareLinks,
		APIKeys:     apiKeys,
		Auth:        auth.NewMiddleware(apiKeys, verifier, log),
		Screenshots: capturer,
		EmailMode:   validate.EmailPermissive,
	})

	return &testEnv{
		Router:     router,
		ShareLinks: shareLinks,
		APIKeys:    apiKeys,
		Capturer:   capturer,
	}
}

// seedAPIKey issues a key so requests can pass the API key gate.
func seedAPIKey(t *testing.T, env *testEnv) string {
	t.Helper()
	key, err := env.APIKeys.CreateOrGet(context.Background(), "seed@covidactnow.org")
	if err != nil {
		t.Fatalf("seed api key: %v", err)
	}
	return key
}

var errCaptureFailed = errors.New("browser crashed")
