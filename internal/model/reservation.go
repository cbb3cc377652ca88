package model

import (
	"fmt"
	"time"
)

// Status is the display state of a reservation, derived from its
// scheduled instant, the venue's validation outcome and the clock.
type Status int

const (
	StatusActive Status = iota
	StatusExpiring
	StatusAwaitingValidation
	StatusValidated
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusExpiring:
		return "Expiring"
	case StatusAwaitingValidation:
		return "Awaiting validation"
	case StatusValidated:
		return "Validated"
	case StatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Reservation is a booking held by the viewer against one concrete
// activity slot. Validated is a tri-state: nil until the venue decides
// the outcome, then true (attended) or false (missed).
type Reservation struct {
	ID                    int64
	ActivityID            int64
	CompanyID             int64
	CompanyName           string
	Sport                 string
	Date                  time.Time
	Time                  string
	Location              string
	MaxParticipants       int
	RequestedParticipants int
	Participants          int
	AvailableParticipants int
	FeedbackID            *int64
	Validated             *bool
	// SecurityCode is present only on reservations created anonymously
	// and acts as the recovery secret for lookup-by-code.
	SecurityCode string
}

// RecomputeAvailability re-derives AvailableParticipants from the stored
// capacity fields. Derived values are never trusted from any source, so
// every decode path calls this.
func (r *Reservation) RecomputeAvailability() {
	r.AvailableParticipants = r.MaxParticipants - r.RequestedParticipants + r.Participants
}

// Instant combines the reservation's date and time-of-day into the
// scheduled start instant. Times are "HH:MM" strings on the wire.
func (r Reservation) Instant() time.Time {
	t, err := time.Parse("15:04", r.Time)
	if err != nil {
		return r.Date
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, r.Date.Location())
}

const expiringWindow = 24 * time.Hour

// StatusAt derives the display state at the given instant:
//
//	validated == true                  -> Validated
//	expired   && validated == false    -> Expired
//	expired   && validated == nil      -> AwaitingValidation
//	starts within 24h                  -> Expiring
//	otherwise                          -> Active
func (r Reservation) StatusAt(now time.Time) Status {
	instant := r.Instant()
	hasExpired := now.After(instant)
	isExpiring := instant.Sub(now) < expiringWindow
	switch {
	case r.Validated != nil && *r.Validated:
		return StatusValidated
	case hasExpired && r.Validated != nil && !*r.Validated:
		return StatusExpired
	case hasExpired && r.Validated == nil:
		return StatusAwaitingValidation
	case isExpiring:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// Action is something the holder may do with a reservation in its
// current display state.
type Action int

const (
	ActionEdit Action = iota
	ActionDelete
	ActionFeedback
)

// ActionsAt lists the permitted operations: a validated reservation
// without feedback accepts feedback exactly once, non-expired
// reservations can be edited or deleted, everything else is read-only.
func (r Reservation) ActionsAt(now time.Time) []Action {
	switch r.StatusAt(now) {
	case StatusValidated:
		if r.FeedbackID == nil {
			return []Action{ActionFeedback}
		}
		return nil
	case StatusActive, StatusExpiring:
		return []Action{ActionEdit, ActionDelete}
	default:
		return nil
	}
}

// Summary is a short human-readable line used by list output.
func (r Reservation) Summary() string {
	return fmt.Sprintf("#%d %s at %s, %s %s (%d booked)",
		r.ID, r.Sport, r.CompanyName, r.Date.Format("2006-01-02"), r.Time, r.Participants)
}

// ReservationOption is a time variant available when editing an existing
// reservation. Same shape as ActivityOption but resolved against the
// reservation's sibling slots.
type ReservationOption struct {
	ActivityID            int64
	Time                  string
	AvailableParticipants int
	ReservationID         *int64
}
