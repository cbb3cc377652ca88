package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }

func reservationAt(date time.Time, hhmm string) Reservation {
	return Reservation{
		ID:          1,
		Sport:       "Padel",
		CompanyName: "Padel Club",
		Date:        date,
		Time:        hhmm,
	}
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		date      time.Time
		time      string
		validated *bool
		want      Status
	}{
		{
			name:      "validated wins regardless of schedule",
			date:      now.AddDate(0, 0, 5),
			time:      "18:00",
			validated: boolPtr(true),
			want:      StatusValidated,
		},
		{
			name:      "validated wins even in the past",
			date:      now.AddDate(0, 0, -5),
			time:      "18:00",
			validated: boolPtr(true),
			want:      StatusValidated,
		},
		{
			name:      "past and rejected is expired",
			date:      now.AddDate(0, 0, -2),
			time:      "18:00",
			validated: boolPtr(false),
			want:      StatusExpired,
		},
		{
			name:      "past and undecided awaits validation",
			date:      now.AddDate(0, 0, -2),
			time:      "18:00",
			validated: nil,
			want:      StatusAwaitingValidation,
		},
		{
			name:      "starting within a day is expiring",
			date:      now,
			time:      "20:00",
			validated: nil,
			want:      StatusExpiring,
		},
		{
			name:      "just under the 24h boundary is expiring",
			date:      now.AddDate(0, 0, 1),
			time:      "11:59",
			validated: nil,
			want:      StatusExpiring,
		},
		{
			name:      "more than a day ahead is active",
			date:      now.AddDate(0, 0, 3),
			time:      "18:00",
			validated: nil,
			want:      StatusActive,
		},
		{
			name:      "rejected but still upcoming is not expired",
			date:      now.AddDate(0, 0, 3),
			time:      "18:00",
			validated: boolPtr(false),
			want:      StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reservationAt(tt.date, tt.time)
			r.Validated = tt.validated
			assert.Equal(t, tt.want, r.StatusAt(now))
		})
	}
}

func TestActionsAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("validated without feedback accepts feedback", func(t *testing.T) {
		r := reservationAt(now.AddDate(0, 0, -1), "18:00")
		r.Validated = boolPtr(true)
		assert.Equal(t, []Action{ActionFeedback}, r.ActionsAt(now))
	})

	t.Run("validated with feedback is read-only", func(t *testing.T) {
		r := reservationAt(now.AddDate(0, 0, -1), "18:00")
		r.Validated = boolPtr(true)
		r.FeedbackID = int64Ptr(7)
		assert.Empty(t, r.ActionsAt(now))
	})

	t.Run("upcoming reservations can be edited and cancelled", func(t *testing.T) {
		r := reservationAt(now.AddDate(0, 0, 3), "18:00")
		assert.Equal(t, []Action{ActionEdit, ActionDelete}, r.ActionsAt(now))
	})

	t.Run("expiring reservations can still be changed", func(t *testing.T) {
		r := reservationAt(now, "20:00")
		assert.Equal(t, []Action{ActionEdit, ActionDelete}, r.ActionsAt(now))
	})

	t.Run("awaiting validation is read-only", func(t *testing.T) {
		r := reservationAt(now.AddDate(0, 0, -1), "18:00")
		assert.Empty(t, r.ActionsAt(now))
	})

	t.Run("expired is read-only", func(t *testing.T) {
		r := reservationAt(now.AddDate(0, 0, -1), "18:00")
		r.Validated = boolPtr(false)
		assert.Empty(t, r.ActionsAt(now))
	})
}

func TestRecomputeAvailability(t *testing.T) {
	r := Reservation{
		MaxParticipants:       10,
		RequestedParticipants: 7,
		Participants:          3,
		// A stale stored value must never survive a recompute.
		AvailableParticipants: 99,
	}
	r.RecomputeAvailability()
	assert.Equal(t, 6, r.AvailableParticipants)
}

func TestInstant(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("combines date and time of day", func(t *testing.T) {
		r := reservationAt(date, "18:30")
		assert.Equal(t, time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC), r.Instant())
	})

	t.Run("unparseable time falls back to the date", func(t *testing.T) {
		r := reservationAt(date, "whenever")
		assert.Equal(t, date, r.Instant())
	})
}
