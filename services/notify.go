package services

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultNotifyTimeout bounds how long a request waits for notifications.
const DefaultNotifyTimeout = 20 * time.Second

// Delivery is the outcome of one notification channel.
type Delivery struct {
	ID  string
	Err error
}

// NotifyResult reports what happened to each notification. Channels that are
// not configured are left zero.
type NotifyResult struct {
	Notification Delivery
	Confirmation Delivery
	SMS          *Delivery
}

// ContactNotifier fans a new contact out to email and SMS. Failures are
// logged and reported, never returned as errors.
type ContactNotifier struct {
	email   *EmailDispatcher
	sms     *SMSAlerter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewContactNotifier builds a notifier. sms may be nil.
func NewContactNotifier(email *EmailDispatcher, sms *SMSAlerter, timeout time.Duration) *ContactNotifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &ContactNotifier{
		email:   email,
		sms:     sms,
		timeout: timeout,
		logger:  log.With().Str("service", "contactNotifier").Logger(),
	}
}

// NotifyContact sends the internal notification, the confirmation and the
// optional SMS concurrently and waits for all of them. The sends outlive a
// cancelled request context but are bounded by the notifier timeout.
func (n *ContactNotifier) NotifyContact(ctx context.Context, contact models.Contact) NotifyResult {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	var result NotifyResult
	var g errgroup.Group

	g.Go(func() error {
		id, err := n.email.SendContactEmail(ctx, contact)
		result.Notification = n.record("notification email", contact, id, err)
		return nil
	})
	g.Go(func() error {
		id, err := n.email.SendConfirmationEmail(ctx, contact)
		result.Confirmation = n.record("confirmation email", contact, id, err)
		return nil
	})
	if n.sms != nil {
		result.SMS = &Delivery{}
		g.Go(func() error {
			id, err := n.sms.SendContactAlert(ctx, contact)
			*result.SMS = n.record("sms alert", contact, id, err)
			return nil
		})
	}

	_ = g.Wait()
	return result
}

func (n *ContactNotifier) record(channel string, contact models.Contact, id string, err error) Delivery {
	if errs.IsServiceUnavailableError(err) || errs.IsEnvironmentVariableError(err) {
		n.logger.Warn().Err(err).
			Str("channel", channel).
			Str("contactId", contact.ID.String()).
			Msg("Contact notification channel not configured")
		return Delivery{Err: err}
	}
	if err != nil {
		n.logger.Error().Err(err).
			Str("channel", channel).
			Str("contactId", contact.ID.String()).
			Msg("Failed to deliver contact notification")
		return Delivery{Err: err}
	}
	n.logger.Info().
		Str("channel", channel).
		Str("contactId", contact.ID.String()).
		Str("messageId", id).
		Msg("Contact notification sent")
	return Delivery{ID: id}
}
