package accountservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/restory/restory/internal/authz"
)

func testCodeAccount() *Account {
	return &Account{
		ID:       1,
		Username: "tester",
		Email:    "tester@example.com",
		Role:     authz.RoleUser,
		Version:  1,
	}
}

func TestCodeRoundtrip(t *testing.T) {
	g := NewCodeGenerator("secret", 24*time.Hour, 2)
	a := testCodeAccount()

	code := g.Generate(a)
	assert.Len(t, code, codeLength)
	assert.True(t, g.Verify(a, code))
}

func TestCodeRejectsWrongAccount(t *testing.T) {
	g := NewCodeGenerator("secret", 24*time.Hour, 2)
	a := testCodeAccount()

	code := g.Generate(a)

	other := testCodeAccount()
	other.ID = 2
	assert.False(t, g.Verify(other, code))
}

func TestCodeRejectsWrongSecret(t *testing.T) {
	a := testCodeAccount()

	code := NewCodeGenerator("secret", 24*time.Hour, 2).Generate(a)
	assert.False(t, NewCodeGenerator("other", 24*time.Hour, 2).Verify(a, code))
}

func TestCodeInvalidatedByVersionBump(t *testing.T) {
	g := NewCodeGenerator("secret", 24*time.Hour, 2)
	a := testCodeAccount()

	code := g.Generate(a)

	a.Version = 2
	assert.False(t, g.Verify(a, code))
}

func TestCodeTimeWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	g := NewCodeGenerator("secret", 24*time.Hour, 2)
	g.now = func() time.Time { return base }

	a := testCodeAccount()
	code := g.Generate(a)

	// still valid within the skew window
	g.now = func() time.Time { return base.Add(48 * time.Hour) }
	assert.True(t, g.Verify(a, code))

	// expired once the window has passed
	g.now = func() time.Time { return base.Add(96 * time.Hour) }
	assert.False(t, g.Verify(a, code))
}
