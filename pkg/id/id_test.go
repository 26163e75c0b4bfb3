package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Len(t, next, 26)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewAtRoundTripsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	got, err := Created(NewAt(at))
	require.NoError(t, err)
	assert.True(t, got.Equal(at))
}

func TestCreatedRejectsShortIDs(t *testing.T) {
	t.Parallel()

	_, err := Created("1")
	assert.Error(t, err)
}
