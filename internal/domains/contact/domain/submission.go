package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxMessageLength bounds the free-text message.
const MaxMessageLength = 5000

var (
	ErrMissingField   = errors.New("contact field is required")
	ErrInvalidEmail   = errors.New("email is invalid")
	ErrMessageTooLong = errors.New("message is too long")
)

// Submission is a contact-form message. Every field is required.
type Submission struct {
	ID          int64
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	Subject     string
	Message     string
	SubmittedAt time.Time
}

// NewSubmission trims every field and validates the result.
func NewSubmission(firstName, lastName, phone, email, subject, message string, submittedAt time.Time) (*Submission, error) {
	s := &Submission{
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		Phone:       strings.TrimSpace(phone),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Subject:     strings.TrimSpace(subject),
		Message:     strings.TrimSpace(message),
		SubmittedAt: submittedAt.UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Submission) Validate() error {
	fields := []struct{ name, value string }{
		{"firstName", s.FirstName},
		{"lastName", s.LastName},
		{"phone", s.Phone},
		{"email", s.Email},
		{"subject", s.Subject},
		{"message", s.Message},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	at := strings.IndexByte(s.Email, '@')
	if at <= 0 || at == len(s.Email)-1 || strings.ContainsAny(s.Email, " \t") {
		return ErrInvalidEmail
	}
	if len(s.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
