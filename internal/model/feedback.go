package model

import "time"

// Feedback is a post-validation review left for a venue. UserName is
// empty for reviews submitted before the author had an account.
type Feedback struct {
	ID          int64
	CompanyID   int64
	CompanyName string
	Message     string
	Score       int
	Timestamp   time.Time
	UserName    string
}

// Company is a venue offering activities.
type Company struct {
	ID          int64
	Name        string
	Description string
}
