package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivationTemplate(t *testing.T) {
	tp := NewTemplate()

	data := struct{ ActivationToken string }{ActivationToken: "ABCDEFGH"}

	subject, plainBody, htmlBody, err := tp.ParseTemplate("activation_email.html", data)
	require.NoError(t, err)

	assert.Equal(t, "Activate your account", subject.String())
	assert.Contains(t, plainBody.String(), "ABCDEFGH")
	assert.Contains(t, htmlBody.String(), "ABCDEFGH")
}

func TestParseVerificationTemplate(t *testing.T) {
	tp := NewTemplate()

	data := struct {
		Username         string
		VerificationCode string
	}{Username: "tester", VerificationCode: "deadbeef"}

	subject, plainBody, htmlBody, err := tp.ParseTemplate("verification_code.html", data)
	require.NoError(t, err)

	assert.Equal(t, "Your confirmation code", subject.String())
	assert.Contains(t, plainBody.String(), "tester")
	assert.Contains(t, plainBody.String(), "deadbeef")
	assert.Contains(t, htmlBody.String(), "deadbeef")
}

func TestParseTemplateUnknown(t *testing.T) {
	tp := NewTemplate()

	_, _, _, err := tp.ParseTemplate("missing.html", nil)
	assert.Error(t, err)
}
