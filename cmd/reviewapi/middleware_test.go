package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restory/restory/internal/accountservice"
	"github.com/restory/restory/internal/authz"
)

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	ts := newTestServer(t, app.recoverPanic(next))

	res, err := http.Get(ts.URL)
	require.NoError(t, err)

	status, _ := readResponse(t, res)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "close", res.Header.Get("Connection"))
}

func TestAuthenticateAnonymous(t *testing.T) {
	app := newTestApplication(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := app.getAccountContext(r)
		assert.True(t, account.IsAnonymous())
		w.WriteHeader(http.StatusOK)
	})

	ts := newTestServer(t, app.authenticate(next))

	res, err := http.Get(ts.URL)
	require.NoError(t, err)

	status, _ := readResponse(t, res)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Authorization", res.Header.Get("Vary"))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	app := newTestApplication(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ts := newTestServer(t, app.authenticate(next))

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "NotBearer token")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	status, _ := readResponse(t, res)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Bearer", res.Header.Get("WWW-Authenticate"))
	assert.False(t, called)
}

func TestRequireAuthAccountRejectsAnonymous(t *testing.T) {
	app := newTestApplication(t)

	next := app.requireAuthAccount(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = app.createAccountContext(r, &accountservice.AnonymousAccount)
		next.ServeHTTP(w, r)
	}))

	res, err := http.Get(ts.URL)
	require.NoError(t, err)

	status, _ := readResponse(t, res)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		account  *accountservice.Account
		wantCode int
	}{
		{
			name:     "anonymous",
			account:  &accountservice.AnonymousAccount,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "plain user",
			account:  &accountservice.Account{ID: 1, Username: "alice", Role: authz.RoleUser},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "moderator",
			account:  &accountservice.Account{ID: 2, Username: "bob", Role: authz.RoleModerator},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin",
			account:  &accountservice.Account{ID: 3, Username: "carol", Role: authz.RoleAdmin},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)

			next := app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			ts := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				r = app.createAccountContext(r, tt.account)
				next.ServeHTTP(w, r)
			}))

			res, err := http.Get(ts.URL)
			require.NoError(t, err)

			status, _ := readResponse(t, res)
			assert.Equal(t, tt.wantCode, status)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t)
	app.config.Limiter.Enabled = true
	app.config.Limiter.RPS = 1
	app.config.Limiter.Burst = 2

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := newTestServer(t, app.rateLimit(next))

	var codes []int
	for i := 0; i < 3; i++ {
		res, err := http.Get(ts.URL)
		require.NoError(t, err)

		status, _ := readResponse(t, res)
		codes = append(codes, status)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestExtractTokenFromHeader(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, "abc123", app.extractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", app.extractTokenFromHeader("Basic abc123"))
	assert.Equal(t, "", app.extractTokenFromHeader("Bearer"))
	assert.Equal(t, "", app.extractTokenFromHeader(""))
}
