package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testServer struct {
	*httptest.Server
}

func newTestApplication(t *testing.T) *application {
	cfg := &Config{
		Port:        ":8080",
		Environment: "test",
		Version:     "test",
	}
	cfg.Auth.CodeSecret = "test-code-secret"
	cfg.Auth.JWTSecret = "test-jwt-secret"
	cfg.Auth.JWTTTL = 24 * time.Hour
	cfg.Cache.TTL = 5 * time.Minute
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 4

	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, envelope) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, env
}
