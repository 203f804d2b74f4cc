package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restory/restory/internal/common"
)

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "valid", password: "TestPassword123!", valid: true},
		{name: "empty", password: "", valid: false},
		{name: "too short", password: "Tp1!", valid: false},
		{name: "no uppercase", password: "testpassword123!", valid: false},
		{name: "no number", password: "TestPassword!", valid: false},
		{name: "no symbol", password: "TestPassword123", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{name: "valid", username: "tester1", valid: true},
		{name: "empty", username: "", valid: false},
		{name: "too short", username: "ab", valid: false},
		{name: "symbols", username: "tester!", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}
