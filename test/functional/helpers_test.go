//go:build functional

// Package functional provides black-box tests against the fully wired router.
package functional

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"itemsvc/internal/config"
	"itemsvc/internal/model"
	"itemsvc/internal/server"
	"itemsvc/internal/store"
)

// newTestServer builds a server with the full middleware chain and an
// empty store, exposed through an httptest server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:      8080,
		LogLevel:        "error",
		ShutdownTimeout: 5 * time.Second,
		MetricsEnabled:  false,
		AuthMode:        "none",
	}

	srv := server.New(cfg, zap.NewNop(), store.NewMemoryStore(), nil)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return ts
}

// doJSON issues a request with a JSON body and decodes the item
// envelope from the response.
func doJSON(t *testing.T, client *http.Client, method, url, body string) (*http.Response, model.APIResponse[model.Item]) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest() unexpected error: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var envelope model.APIResponse[model.Item]
	if resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}

	return resp, envelope
}
