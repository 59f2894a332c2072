package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationMessages maps "<owner>.<field>.<tag>" to the message returned to
// clients. The owner is the struct type, or the slice field for dived items.
var validationMessages = map[string]string{
	"Contact.Name.required":    "Name is required",
	"Contact.Email.required":   "Email is required",
	"Contact.Email.email":      "Please enter a valid email",
	"Contact.Subject.required": "Subject is required",
	"Contact.Message.required": "Message is required",

	"Project.Title.required":       "Project title is required",
	"Project.Title.max":            "Title cannot be more than 100 characters",
	"Project.Description.required": "Project description is required",
	"Project.Description.max":      "Description cannot be more than 1000 characters",
	"Project.Link.required":        "Project link is required",
	"Project.Status.oneof":         "Status must be one of: In Progress, Completed, On Hold",

	"SkillCategory.Category.required": "Category name is required",
	"SkillCategory.Category.max":      "Category name cannot be more than 100 characters",
	"Items.Name.required":             "Skill name is required",
	"Items.Name.max":                  "Skill name cannot be more than 50 characters",
	"Items.Color.required":            "Skill color is required",
}

var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// ValidationError lists every schema violation found on a model.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validate checks v against its struct tags and returns a *ValidationError
// carrying one human readable message per violation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe))
	}
	return &ValidationError{Messages: messages}
}

func messageFor(fe validator.FieldError) string {
	segments := strings.Split(fe.StructNamespace(), ".")
	owner := ""
	if len(segments) >= 2 {
		owner = indexSuffix.ReplaceAllString(segments[len(segments)-2], "")
	}

	key := fmt.Sprintf("%s.%s.%s", owner, fe.StructField(), fe.Tag())
	if msg, ok := validationMessages[key]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
}
