package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
)

const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer relays mail through an authenticated SMTP submission server,
// Gmail with an app password by default.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	sendMail sendMailFunc
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", fmt.Errorf("at least one recipient is required")
	}

	raw, messageID, err := m.compose(msg)
	if err != nil {
		return "", fmt.Errorf("failed to compose email: %w", err)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	// net/smtp has no context support, so the send is raced against ctx.
	done := make(chan error, 1)
	go func() {
		done <- m.sendMail(addr, auth, m.username, []string{msg.To}, raw)
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("failed to send email via %s: %w", addr, ctx.Err())
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("failed to send email via %s: %w", addr, err)
		}
	}
	return messageID, nil
}

// compose renders msg as a multipart/alternative RFC 5322 message.
func (m *SMTPMailer) compose(msg Message) ([]byte, string, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: msg.FromName, Address: m.username}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	if msg.ReplyTo != "" {
		h.SetAddressList("Reply-To", []*mail.Address{{Address: msg.ReplyTo}})
	}
	h.SetSubject(msg.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, "", err
	}
	messageID, err := h.MessageID()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return nil, "", err
	}
	if msg.Text != "" {
		if err := writePart(w, "text/plain", msg.Text); err != nil {
			return nil, "", err
		}
	}
	if msg.HTML != "" {
		if err := writePart(w, "text/html", msg.HTML); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), messageID, nil
}

func writePart(w *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	ph.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := w.CreatePart(ph)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(pw, body); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}
