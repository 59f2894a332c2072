package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const (
	contactFromName      = "Portfolio Contact"
	contactSubjectPrefix = "Portfolio Contact: "
	confirmationSubject  = "Thank you for your message!"

	DefaultSiteURL   = "http://localhost:3000"
	DefaultOwnerName = "Portfolio Owner"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
)

// EmailOptions configures the two contact emails.
type EmailOptions struct {
	NotifyTo  string // recipient of the internal notification
	OwnerName string // signature and sender name on the confirmation
	SiteURL   string // link at the bottom of the confirmation
}

// EmailOptionsFromConfig reads PERSONAL_EMAIL, OWNER_NAME and SITE_URL.
// relayAccount is used when PERSONAL_EMAIL is not set.
func EmailOptionsFromConfig(c map[string]string, relayAccount string) EmailOptions {
	return EmailOptions{
		NotifyTo:  config.GetString(c, "PERSONAL_EMAIL", relayAccount),
		OwnerName: config.GetString(c, "OWNER_NAME", DefaultOwnerName),
		SiteURL:   config.GetString(c, "SITE_URL", DefaultSiteURL),
	}
}

// EmailDispatcher renders and sends the emails triggered by a contact
// submission.
type EmailDispatcher struct {
	mailer Mailer
	opts   EmailOptions
	now    func() time.Time
}

func NewEmailDispatcher(mailer Mailer, opts EmailOptions) *EmailDispatcher {
	if opts.OwnerName == "" {
		opts.OwnerName = DefaultOwnerName
	}
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	return &EmailDispatcher{mailer: mailer, opts: opts, now: time.Now}
}

type contactEmailData struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt string
	OwnerName  string
	SiteURL    string
}

func (d *EmailDispatcher) data(contact models.Contact) contactEmailData {
	return contactEmailData{
		Name:       contact.Name,
		Email:      contact.Email,
		Subject:    contact.Subject,
		Message:    contact.Message,
		ReceivedAt: d.now().Format("January 2, 2006 at 3:04 PM MST"),
		OwnerName:  d.opts.OwnerName,
		SiteURL:    d.opts.SiteURL,
	}
}

// SendContactEmail notifies the site owner of a new submission. Replies go
// straight to the submitter.
func (d *EmailDispatcher) SendContactEmail(ctx context.Context, contact models.Contact) (string, error) {
	if d.opts.NotifyTo == "" {
		return "", errs.NewEnvironmentVariableError("PERSONAL_EMAIL")
	}

	html, text, err := render("contact", d.data(contact))
	if err != nil {
		return "", err
	}

	return d.mailer.Send(ctx, Message{
		FromName: contactFromName,
		To:       d.opts.NotifyTo,
		ReplyTo:  contact.Email,
		Subject:  contactSubjectPrefix + contact.Subject,
		HTML:     html,
		Text:     text,
	})
}

// SendConfirmationEmail thanks the submitter for their message.
func (d *EmailDispatcher) SendConfirmationEmail(ctx context.Context, contact models.Contact) (string, error) {
	html, text, err := render("confirmation", d.data(contact))
	if err != nil {
		return "", err
	}

	return d.mailer.Send(ctx, Message{
		FromName: d.opts.OwnerName,
		To:       contact.Email,
		Subject:  confirmationSubject,
		HTML:     html,
		Text:     text,
	})
}

func render(name string, data contactEmailData) (string, string, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return "", "", fmt.Errorf("rendering %s html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return "", "", fmt.Errorf("rendering %s text: %w", name, err)
	}
	return html.String(), text.String(), nil
}
