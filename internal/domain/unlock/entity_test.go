//go:build unit

package unlock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingForTest() *Record {
	return NewPendingRecord(uuid.New(), uuid.New(), "cs_test_123", 999, "aud")
}

func TestRecord_MarkSucceeded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending record succeeds and stamps unlockedAt", func(t *testing.T) {
		r := newPendingForTest()

		changed := r.MarkSucceeded("pi_123", now)

		assert.True(t, changed)
		assert.Equal(t, StatusSucceeded, r.Status())
		require.NotNil(t, r.UnlockedAt())
		assert.Equal(t, now, *r.UnlockedAt())
		require.NotNil(t, r.PaymentIntentID())
		assert.Equal(t, "pi_123", *r.PaymentIntentID())
	})

	t.Run("second confirmation is a no-op", func(t *testing.T) {
		r := newPendingForTest()
		r.MarkSucceeded("pi_123", now)

		later := now.Add(5 * time.Minute)
		changed := r.MarkSucceeded("pi_456", later)

		assert.False(t, changed)
		require.NotNil(t, r.UnlockedAt())
		assert.Equal(t, now, *r.UnlockedAt(), "original unlock time must be kept")
		assert.Equal(t, "pi_123", *r.PaymentIntentID())
	})

	t.Run("empty payment intent leaves existing reference intact", func(t *testing.T) {
		r := newPendingForTest()

		changed := r.MarkSucceeded("", now)

		assert.True(t, changed)
		assert.Nil(t, r.PaymentIntentID())
	})
}

func TestRecord_MarkFailed(t *testing.T) {
	t.Run("pending record fails", func(t *testing.T) {
		r := newPendingForTest()

		err := r.MarkFailed()

		require.NoError(t, err)
		assert.Equal(t, StatusFailed, r.Status())
		assert.False(t, r.GrantsAccess())
	})

	t.Run("succeeded record is never downgraded", func(t *testing.T) {
		r := newPendingForTest()
		r.MarkSucceeded("pi_123", time.Now())

		err := r.MarkFailed()

		require.ErrorIs(t, err, ErrAlreadySucceeded)
		assert.Equal(t, StatusSucceeded, r.Status())
		assert.True(t, r.GrantsAccess())
	})

	t.Run("failed record stays failed", func(t *testing.T) {
		r := newPendingForTest()
		require.NoError(t, r.MarkFailed())

		err := r.MarkFailed()

		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRecord_MarkRefunded(t *testing.T) {
	t.Run("succeeded record can be refunded", func(t *testing.T) {
		r := newPendingForTest()
		r.MarkSucceeded("pi_123", time.Now())

		err := r.MarkRefunded()

		require.NoError(t, err)
		assert.Equal(t, StatusRefunded, r.Status())
		assert.False(t, r.GrantsAccess())
	})

	t.Run("pending record cannot be refunded", func(t *testing.T) {
		r := newPendingForTest()

		err := r.MarkRefunded()

		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to succeeded", StatusPending, StatusSucceeded, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to refunded", StatusPending, StatusRefunded, false},
		{"succeeded to refunded", StatusSucceeded, StatusRefunded, true},
		{"succeeded to failed", StatusSucceeded, StatusFailed, false},
		{"failed to succeeded", StatusFailed, StatusSucceeded, false},
		{"refunded to pending", StatusRefunded, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
