package userservice

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restory/restory/internal/common"
)

type capturingProducer struct {
	messages [][]byte
}

func (p *capturingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.messages = append(p.messages, msg)
	return nil
}

func setupTestService(t *testing.T) (*UserService, *sql.DB) {
	db := common.TestDB("file://../../migrations/blog", t)
	return NewUserService(db, &capturingProducer{}), db
}

const testPassword = "TestPassword123!"

func TestRegisterUserValidation(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{name: "empty username", username: "", email: "a@example.com", password: testPassword, field: "username"},
		{name: "short username", username: "ab", email: "a@example.com", password: testPassword, field: "username"},
		{name: "bad email", username: "tester", email: "not-an-email", password: testPassword, field: "email"},
		{name: "weak password", username: "tester", email: "a@example.com", password: "password", field: "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.RegisterUser(ctx, tc.username, tc.email, tc.password)
			var validationErr common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, tc.field)
		})
	}
}

func TestRegisterUserDuplicates(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "tester", "tester@example.com", testPassword)
	require.NoError(t, err)

	_, err = s.RegisterUser(ctx, "tester", "other@example.com", testPassword)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = s.RegisterUser(ctx, "other", "tester@example.com", testPassword)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestActivateAndLoginFlow(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	activationToken, err := s.RegisterUser(ctx, "tester", "tester@example.com", testPassword)
	require.NoError(t, err)
	require.NotNil(t, activationToken)

	require.NoError(t, s.ActivateUser(ctx, *activationToken))

	// the activation token is single use
	err = s.ActivateUser(ctx, *activationToken)
	assert.ErrorIs(t, err, ErrNotFound)

	authToken, err := s.LoginUser(ctx, "tester", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, authToken.AccessTokenPlain)

	user, err := s.GetUserByAccessToken(ctx, authToken.AccessTokenPlain)
	require.NoError(t, err)
	assert.Equal(t, "tester", user.Username)
	assert.True(t, user.Activated)

	// logging in again rotates the pair and invalidates the old one
	rotated, err := s.LoginUser(ctx, "tester", testPassword)
	require.NoError(t, err)
	assert.NotEqual(t, authToken.AccessTokenPlain, rotated.AccessTokenPlain)

	_, err = s.GetUserByAccessToken(ctx, authToken.AccessTokenPlain)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.LogoutUser(ctx, user.ID))

	_, err = s.GetUserByAccessToken(ctx, rotated.AccessTokenPlain)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginUserBadCredentials(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "tester", "tester@example.com", testPassword)
	require.NoError(t, err)

	_, err = s.LoginUser(ctx, "tester", "WrongPassword123!")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)

	_, err = s.LoginUser(ctx, "nobody", testPassword)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}
