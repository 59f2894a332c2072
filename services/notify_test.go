package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessageCreator struct {
	params  *twilioApi.CreateMessageParams
	err     error
	release chan struct{} // when set, CreateMessage blocks until closed
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.release != nil {
		<-f.release
	}
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestNotifyContactDeliversEverything(t *testing.T) {
	mailer := &recordingMailer{}
	creator := &fakeMessageCreator{}
	sms := &SMSAlerter{client: creator, from: "+15550000000", to: "+15551111111"}
	n := NewContactNotifier(NewEmailDispatcher(mailer, EmailOptions{NotifyTo: "owner@example.com"}), sms, time.Second)

	result := n.NotifyContact(context.Background(), testContact())

	assert.NoError(t, result.Notification.Err)
	assert.NoError(t, result.Confirmation.Err)
	require.NotNil(t, result.SMS)
	assert.Equal(t, "SM123", result.SMS.ID)
	assert.Len(t, mailer.sent, 2)

	require.NotNil(t, creator.params)
	assert.Equal(t, "New portfolio contact from Ada <script>: Job offer", *creator.params.Body)
	assert.Equal(t, "+15551111111", *creator.params.To)
}

func TestNotifyContactFailuresAreIndependent(t *testing.T) {
	mailer := &recordingMailer{err: map[string]error{"owner@example.com": errors.New("relay down")}}
	n := NewContactNotifier(NewEmailDispatcher(mailer, EmailOptions{NotifyTo: "owner@example.com"}), nil, time.Second)

	result := n.NotifyContact(context.Background(), testContact())

	assert.ErrorContains(t, result.Notification.Err, "relay down")
	assert.NoError(t, result.Confirmation.Err)
	assert.Nil(t, result.SMS)
	_, ok := mailer.byRecipient("ada@example.com")
	assert.True(t, ok, "confirmation must still be sent")
}

func TestNotifyContactSurvivesCancelledRequest(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewContactNotifier(NewEmailDispatcher(mailer, EmailOptions{NotifyTo: "owner@example.com"}), nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := n.NotifyContact(ctx, testContact())
	assert.NoError(t, result.Notification.Err)
	assert.NoError(t, result.Confirmation.Err)
}

func TestNotifyContactWithDisabledMailer(t *testing.T) {
	n := NewContactNotifier(NewEmailDispatcher(disabledMailer{}, EmailOptions{NotifyTo: "owner@example.com"}), nil, 0)
	result := n.NotifyContact(context.Background(), testContact())
	assert.ErrorIs(t, result.Notification.Err, ErrMailerDisabled)
	assert.ErrorIs(t, result.Confirmation.Err, ErrMailerDisabled)
}

func TestSMSAlerter(t *testing.T) {
	assert.Nil(t, NewSMSAlerterFromConfig(map[string]string{"TWILIO_ACCOUNT_SID": "AC1"}))
	assert.NotNil(t, NewSMSAlerterFromConfig(map[string]string{
		"TWILIO_ACCOUNT_SID": "AC1",
		"TWILIO_AUTH_TOKEN":  "token",
		"TWILIO_FROM_NUMBER": "+15550000000",
		"ALERT_PHONE_NUMBER": "+15551111111",
	}))

	creator := &fakeMessageCreator{err: errors.New("20003 authenticate")}
	s := &SMSAlerter{client: creator, from: "+1", to: "+2"}
	_, err := s.SendContactAlert(context.Background(), testContact())
	assert.ErrorContains(t, err, "20003")
}

func TestContactAlertBodyTruncatesSubject(t *testing.T) {
	c := testContact()
	c.Subject = strings.Repeat("é", 100)
	body := contactAlertBody(c)
	assert.Contains(t, body, strings.Repeat("é", smsSubjectLimit-3)+"...")
	assert.NotContains(t, body, strings.Repeat("é", smsSubjectLimit-2))
}

func TestSMSAlertIsBoundedByNotifyTimeout(t *testing.T) {
	creator := &fakeMessageCreator{release: make(chan struct{})}
	defer close(creator.release)
	sms := &SMSAlerter{client: creator, from: "+15550000000", to: "+15551111111"}
	n := NewContactNotifier(NewEmailDispatcher(&recordingMailer{}, EmailOptions{NotifyTo: "owner@example.com"}), sms, 50*time.Millisecond)

	start := time.Now()
	result := n.NotifyContact(context.Background(), testContact())

	assert.Less(t, time.Since(start), 2*time.Second)
	require.NotNil(t, result.SMS)
	assert.ErrorIs(t, result.SMS.Err, context.DeadlineExceeded)
	assert.NoError(t, result.Notification.Err)
	assert.NoError(t, result.Confirmation.Err)
}
