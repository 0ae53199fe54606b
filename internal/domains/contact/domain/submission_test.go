package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmission(t *testing.T) {
	s, err := NewSubmission(" Jo ", "Doe", "555-0100", " Jo@Example.com", "Catering", "Do you cater?", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Jo", s.FirstName)
	assert.Equal(t, "jo@example.com", s.Email)

	_, err = NewSubmission("Jo", "Doe", "", "jo@example.com", "s", "m", time.Now())
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorContains(t, err, "phone")

	_, err = NewSubmission("Jo", "Doe", "1", "jo.example.com", "s", "m", time.Now())
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewSubmission("Jo", "Doe", "1", "jo@example.com", "s", strings.Repeat("x", MaxMessageLength+1), time.Now())
	assert.ErrorIs(t, err, ErrMessageTooLong)
}
