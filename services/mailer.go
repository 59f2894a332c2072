package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// ErrMailerDisabled is returned by every send when no transport is configured.
var ErrMailerDisabled = errors.New("email transport is not configured")

// Message is a single outbound email. From is filled in by the transport
// from its own credentials; only the display name is chosen per message.
type Message struct {
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	HTML     string
	Text     string
}

// Mailer delivers a message and returns the transport's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type disabledMailer struct{}

func (disabledMailer) Send(context.Context, Message) (string, error) {
	return "", errs.NewServiceUnavailableError("Email transport", ErrMailerDisabled)
}

// NewMailerFromConfig picks the transport named by EMAIL_PROVIDER ("smtp" by
// default, or "resend"). It also returns the relay account address, which is
// the fallback recipient for internal notifications.
func NewMailerFromConfig(c map[string]string) (Mailer, string) {
	provider := strings.ToLower(config.GetString(c, "EMAIL_PROVIDER", "smtp"))

	switch provider {
	case "resend":
		apiKey := config.GetString(c, "RESEND_API_KEY", "")
		from := config.GetString(c, "RESEND_FROM_EMAIL", "")
		if apiKey == "" || from == "" {
			log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL not set, emails will not be sent")
			return disabledMailer{}, ""
		}
		mailer, err := NewResendMailer(apiKey, from)
		if err != nil {
			log.Warn().Err(err).Msg("Invalid RESEND_FROM_EMAIL, emails will not be sent")
			return disabledMailer{}, ""
		}
		return mailer, mailer.from.Address
	case "smtp":
		user := config.GetString(c, "GMAIL_USER", "")
		password := config.GetString(c, "GMAIL_APP_PASSWORD", "")
		if user == "" || password == "" {
			log.Warn().Msg("GMAIL_USER or GMAIL_APP_PASSWORD not set, emails will not be sent")
			return disabledMailer{}, user
		}
		host := config.GetString(c, "SMTP_HOST", DefaultSMTPHost)
		port := config.GetInt(c, "SMTP_PORT", DefaultSMTPPort)
		return NewSMTPMailer(host, port, user, password), user
	default:
		log.Warn().Str("provider", provider).Msg("Unknown EMAIL_PROVIDER, emails will not be sent")
		return disabledMailer{}, ""
	}
}
