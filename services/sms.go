package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const smsSubjectLimit = 80

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSAlerter texts the site owner when a contact form is submitted.
type SMSAlerter struct {
	client messageCreator
	from   string
	to     string
}

// NewSMSAlerterFromConfig returns nil unless TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER and ALERT_PHONE_NUMBER are all set.
func NewSMSAlerterFromConfig(c map[string]string) *SMSAlerter {
	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	to := config.GetString(c, "ALERT_PHONE_NUMBER", "")
	if sid == "" || token == "" || from == "" || to == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &SMSAlerter{client: client.Api, from: from, to: to}
}

// SendContactAlert sends a one-line summary of the submission and returns
// the message SID. The Twilio client takes no context, so the call is raced
// against ctx and abandoned when ctx ends first.
func (s *SMSAlerter) SendContactAlert(ctx context.Context, contact models.Contact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(contactAlertBody(contact))

	type result struct {
		resp *twilioApi.ApiV2010Message
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := s.client.CreateMessage(params)
		done <- result{resp, err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("failed to send SMS alert: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("failed to send SMS alert: %w", r.err)
		}
		if r.resp == nil || r.resp.Sid == nil {
			return "", nil
		}
		return *r.resp.Sid, nil
	}
}

func contactAlertBody(contact models.Contact) string {
	subject := []rune(contact.Subject)
	if len(subject) > smsSubjectLimit {
		subject = append(subject[:smsSubjectLimit-3], []rune("...")...)
	}
	return fmt.Sprintf("New portfolio contact from %s: %s", contact.Name, string(subject))
}
