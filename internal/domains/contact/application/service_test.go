package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cafe-api/internal/domains/contact/adapters/memory"
	"github.com/Apurer/cafe-api/internal/domains/contact/ports"
)

func TestSubmit(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	saved, err := svc.Submit(ctx, ports.SubmitInput{
		FirstName: "Jo", LastName: "Doe", Phone: "555", Email: "jo@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.SubmittedAt.IsZero())

	_, err = svc.Submit(ctx, ports.SubmitInput{FirstName: "Jo"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
