package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/restory/restory/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendActivationEmail delivers account activation tokens to newly registered
// blog users.
func (s *MailService) SendActivationEmail() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					Email string
					Token string
				}

				if err := json.Unmarshal(msg.Body, &data); err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				payload := struct {
					ActivationToken string
				}{
					ActivationToken: data.Token,
				}

				if s.sendWithRetry(data.Email, payload, "activation_email.html") {
					s.logger.Info("activation email sent", slog.String("email", data.Email))
				} else {
					s.logger.Error("could not send activation email", slog.String("email", data.Email))
				}
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendActivationEmail due to context cancellation")
				return
			}
		}
	}()
}

// SendVerificationCode delivers signup confirmation codes. Signup is
// idempotent upstream, so a user can trigger this message repeatedly to get
// their current code again.
func (s *MailService) SendVerificationCode() {
	msgs, err := s.mb.Consume(common.UserSignupKey, common.UserExchange, common.UserSignupQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					Email    string
					Username string
					Code     string
				}

				if err := json.Unmarshal(msg.Body, &data); err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				payload := struct {
					Username         string
					VerificationCode string
				}{
					Username:         data.Username,
					VerificationCode: data.Code,
				}

				if s.sendWithRetry(data.Email, payload, "verification_code.html") {
					s.logger.Info("verification code sent", slog.String("email", data.Email))
				} else {
					s.logger.Error("could not send verification code", slog.String("email", data.Email))
				}
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendVerificationCode due to context cancellation")
				return
			}
		}
	}()
}

// sendWithRetry attempts delivery with exponential backoff and jitter.
func (s *MailService) sendWithRetry(recipient string, data any, templateFile string) bool {
	const maxRetries = 5
	const baseDelay = 500 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(recipient, data, templateFile)
		if err == nil {
			return true
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying email delivery", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		time.Sleep(delay)
	}

	return false
}

func (s *MailService) Close() {
	s.cancel()
}
