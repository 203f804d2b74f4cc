package accountservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{name: "plain", username: "tester", valid: true},
		{name: "django charset", username: "user.name@host+x-1_2", valid: true},
		{name: "empty", username: "", valid: false},
		{name: "reserved me", username: "me", valid: false},
		{name: "reserved me mixed case", username: "Me", valid: false},
		{name: "illegal characters", username: "has space", valid: false},
		{name: "too long", username: strings.Repeat("a", 151), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateRole(t *testing.T) {
	for _, role := range []authz.Role{authz.RoleUser, authz.RoleModerator, authz.RoleAdmin} {
		v := common.NewValidator()
		validateRole(v, role)
		assert.True(t, v.Valid(), string(role))
	}

	v := common.NewValidator()
	validateRole(v, authz.Role("owner"))
	assert.False(t, v.Valid())
}

func TestValidateCode(t *testing.T) {
	v := common.NewValidator()
	validateCode(v, strings.Repeat("a", codeLength))
	assert.True(t, v.Valid())

	v = common.NewValidator()
	validateCode(v, "short")
	assert.False(t, v.Valid())
}
