package model

import "github.com/google/uuid"

// User is the identity of the actor performing an operation.
// Exactly one of the two variants is active at a time; both carry the
// locally generated LocalID so anonymous reservations can be linked
// after a later login.
type User interface {
	// Local returns the stable local identifier generated for this
	// browser-profile equivalent (the state directory).
	Local() uuid.UUID
	isUser()
}

// Anonymous is a visitor without an account.
type Anonymous struct {
	LocalID uuid.UUID
}

func (a Anonymous) Local() uuid.UUID { return a.LocalID }
func (Anonymous) isUser()            {}

// Authenticated is a logged-in user.
type Authenticated struct {
	ID        int64
	LocalID   uuid.UUID
	FirstName string
	LastName  string
}

func (a Authenticated) Local() uuid.UUID { return a.LocalID }
func (Authenticated) isUser()            {}

// UserID returns the server-side user id, or 0 when the user is anonymous.
func UserID(u User) int64 {
	switch v := u.(type) {
	case Authenticated:
		return v.ID
	case Anonymous:
		return 0
	default:
		return 0
	}
}
