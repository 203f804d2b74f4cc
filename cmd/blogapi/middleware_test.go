package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	res := httptest.NewRecorder()
	app.recoverPanic(handler).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestAuthenticateAnonymous(t *testing.T) {
	app := newTestApplication(t)

	handler := app.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.getUserContext(r)
		require.NotNil(t, user)
		assert.True(t, user.IsAnonymous())
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Authorization", res.Header().Get("Vary"))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	app := newTestApplication(t)

	handler := app.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "NotBearer token")

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireAuthUserRejectsAnonymous(t *testing.T) {
	app := newTestApplication(t)

	handler := app.authenticate(app.requireAuthUser(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/users/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t)
	app.config.Limiter.Enabled = true
	app.config.Limiter.RPS = 1
	app.config.Limiter.Burst = 2

	handler := app.rateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		codes = append(codes, res.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestExtractTokenFromHeader(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, "abc", app.extractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", app.extractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", app.extractTokenFromHeader("Bearer"))
	assert.Equal(t, "", app.extractTokenFromHeader("Bearer a b"))
}
