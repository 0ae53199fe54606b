package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	s, err := NewSnapshot(at, Totals{TotalOrders: 3, TotalItemsSold: 9})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, s.TakenAt.Location())
	assert.Equal(t, int64(9), s.TotalItemsSold)

	_, err = NewSnapshot(time.Time{}, Totals{})
	assert.ErrorIs(t, err, ErrMissingTakenAt)

	_, err = NewSnapshot(at, Totals{TotalOrders: -1})
	assert.ErrorIs(t, err, ErrNegativeTotals)
}
