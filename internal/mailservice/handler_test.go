package mailservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestService(m Mailer, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     new(MockMessageConsumer),
		m:      m,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestSendActivationEmail(t *testing.T) {
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()

	s := newTestService(mockMailer, mockLogger)
	t.Cleanup(s.Close)

	s.SendActivationEmail()

	assert.Eventually(t, mockMailer.IsCalled, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, "test@example.com", mockMailer.GetEmail())
	assert.Equal(t, "activation_email.html", mockMailer.GetTemplate())
}

func TestSendVerificationCode(t *testing.T) {
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()

	s := newTestService(mockMailer, mockLogger)
	t.Cleanup(s.Close)

	s.SendVerificationCode()

	assert.Eventually(t, mockMailer.IsCalled, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, "test@example.com", mockMailer.GetEmail())
	assert.Equal(t, "verification_code.html", mockMailer.GetTemplate())
}
