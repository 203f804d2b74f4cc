package accountservice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
)

type capturingProducer struct {
	messages [][]byte
}

func (p *capturingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.messages = append(p.messages, msg)
	return nil
}

func setupTestService(t *testing.T) (*AccountService, *capturingProducer) {
	db := common.TestDB("file://../../migrations/review", t)
	producer := &capturingProducer{}
	return NewAccountService(db, producer, "code-secret", "jwt-secret", time.Hour), producer
}

func TestSignUp(t *testing.T) {
	s, producer := setupTestService(t)
	ctx := context.Background()

	account, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tester", account.Username)
	assert.Equal(t, authz.RoleUser, account.Role)
	require.Len(t, producer.messages, 1)

	var payload struct {
		Email    string
		Username string
		Code     string
	}
	require.NoError(t, json.Unmarshal(producer.messages[0], &payload))
	assert.Equal(t, "tester@example.com", payload.Email)
	assert.Len(t, payload.Code, codeLength)
}

func TestSignUpIdempotent(t *testing.T) {
	s, producer := setupTestService(t)
	ctx := context.Background()

	first, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)

	// same pair again resends the code instead of failing
	second, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, producer.messages, 2)
}

func TestSignUpConflicts(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		username string
		email    string
		field    string
	}{
		{name: "email taken by another username", username: "other", email: "tester@example.com", field: "email"},
		{name: "username taken with another email", username: "tester", email: "other@example.com", field: "username"},
		{name: "reserved username", username: "me", email: "me@example.com", field: "username"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SignUp(ctx, tc.username, tc.email)
			var validationErr common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, tc.field)
		})
	}
}

func TestIssueToken(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	account, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)

	code := s.codes.Generate(account)

	token, err := s.IssueToken(ctx, "tester", code)
	require.NoError(t, err)

	got, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestIssueTokenUnknownUsername(t *testing.T) {
	s, _ := setupTestService(t)

	_, err := s.IssueToken(context.Background(), "nobody", testFakeCode())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueTokenBadCode(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)

	_, err = s.IssueToken(ctx, "tester", testFakeCode())
	var validationErr common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "verification_code")
}

func TestUpdateAccountRoleGate(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "tester", "tester@example.com")
	require.NoError(t, err)

	role := authz.RoleAdmin

	// self-service update must not escalate the role
	account, err := s.UpdateAccount(ctx, "tester", &UpdateAccountRequest{Role: &role}, false)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleUser, account.Role)

	// the admin surface may
	account, err = s.UpdateAccount(ctx, "tester", &UpdateAccountRequest{Role: &role}, true)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, account.Role)
}

func testFakeCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = 'f'
	}
	return string(code)
}
