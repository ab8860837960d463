package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpimple94/boultindia-api/models"
)

func TestCanCancel(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   models.OrderStatus
		placedAt time.Time
		want     bool
	}{
		{"processing at 23h", models.OrderStatusProcessing, now.Add(-23 * time.Hour), true},
		{"processing at 25h", models.OrderStatusProcessing, now.Add(-25 * time.Hour), false},
		{"pending just placed", models.OrderStatusPending, now, true},
		{"pending exactly 24h", models.OrderStatusPending, now.Add(-24 * time.Hour), false},
		{"shipped regardless of age", models.OrderStatusShipped, now.Add(-1 * time.Hour), false},
		{"delivered", models.OrderStatusDelivered, now.Add(-1 * time.Hour), false},
		{"already cancelled", models.OrderStatusCancelled, now.Add(-1 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCancel(tt.status, tt.placedAt, now))
		})
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		placedAt time.Time
		want     string
	}{
		{"30 minutes left", now.Add(-23*time.Hour - 30*time.Minute), "30 minutes remaining"},
		{"5 hours left", now.Add(-19 * time.Hour), "5 hours remaining"},
		{"expired exactly", now.Add(-24 * time.Hour), "Cancellation period expired"},
		{"long expired", now.Add(-48 * time.Hour), "Cancellation period expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeRemaining(tt.placedAt, now))
		})
	}
}

func TestProgress_Shipped(t *testing.T) {
	steps := Progress(models.OrderStatusShipped)
	require.Len(t, steps, 4)

	assert.True(t, steps[0].Completed)  // pending
	assert.True(t, steps[1].Completed)  // processing
	assert.True(t, steps[2].Completed)  // shipped
	assert.True(t, steps[2].Active)
	assert.False(t, steps[3].Completed) // delivered
	assert.False(t, steps[3].Active)
}

func TestProgress_Cancelled(t *testing.T) {
	assert.Nil(t, Progress(models.OrderStatusCancelled))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got)

	_, err = ParseStatus("returned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
