package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactStatusNew is the status every submission starts with.
const ContactStatusNew = "new"

// Contact is an inquiry submitted through the contact form
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null" validate:"required"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null" validate:"required,email"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null" validate:"required"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null" validate:"required"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null;default:'new';index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;index;autoCreateTime:false"`
}

// ContactFilter narrows a contact listing.
type ContactFilter struct {
	Status string
}

// NewContact builds a contact from raw form input: every field is trimmed
// and the email is lowercased.
func NewContact(name, email, subject, message string) *Contact {
	return &Contact{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		Status:    ContactStatusNew,
		CreatedAt: time.Now().UTC(),
	}
}

// Complete reports whether all four form fields are present.
func (c *Contact) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Subject != "" && c.Message != ""
}
