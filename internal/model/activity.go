package model

import "time"

// Bookability classifies whether the viewer can book an activity.
type Bookability int

const (
	// Unavailable means the activity cannot be booked by this viewer.
	Unavailable Bookability = iota
	// Available means the viewer is authenticated and may book.
	Available
	// AnonymousAllowed means the activity accepts bookings without login.
	AnonymousAllowed
)

func (b Bookability) String() string {
	switch b {
	case Available:
		return "Available"
	case AnonymousAllowed:
		return "Anonymous booking allowed"
	default:
		return "Unavailable"
	}
}

// Activity is a grouped bookable offering: all slots sharing the same
// sport, venue and day are presented as one entry whose Times holds the
// distinct time-of-day variants. Capacity per concrete slot is resolved
// later through ActivityOption.
type Activity struct {
	ID              int64
	Sport           string
	Date            time.Time
	Times           []string
	MaxParticipants int
	Description     string
	Location        string
	CompanyID       int64
	CompanyName     string
	AllowAnonymous  bool
	IsBanned        bool
	// ReservationID is set only when the viewer already holds a
	// reservation against one of this activity's time variants.
	ReservationID *int64
}

// BookableBy reproduces the availability classification: banned wins over
// everything, authenticated viewers can always book, anonymous viewers
// only when the venue allows it.
func (a Activity) BookableBy(u User) Bookability {
	if a.IsBanned {
		return Unavailable
	}
	switch u.(type) {
	case Authenticated:
		return Available
	case Anonymous:
		if a.AllowAnonymous {
			return AnonymousAllowed
		}
	}
	return Unavailable
}

// ActivityOption is one concrete time variant of a grouped activity with
// its own remaining capacity. ReservationID is non-nil when the viewer
// already booked this specific slot.
type ActivityOption struct {
	ActivityID            int64
	Time                  string
	AvailableParticipants int
	ReservationID         *int64
}
