package submissions

import (
	"errors"
	"time"

	"parkspot/internal/moderation"
)

const QueryTimeoutDuration = time.Second * 5

var ErrSubmissionNotFound = errors.New("submission not found")

// Status re-exports the moderation states so callers holding a submission
// do not need a second import for its lifecycle.
type Status = moderation.Status

const (
	StatusPending  = moderation.StatusPending
	StatusApproved = moderation.StatusApproved
	StatusRejected = moderation.StatusRejected
)

// Submission is a candidate park. Votes, photos, comments and tags hang off
// it and are removed with it. Only status and the vote tallies change after
// creation; both are written together inside the moderation transaction.
type Submission struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address"`
	Status      Status    `json:"status"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSubmissionInput is what the handler passes in.
type CreateSubmissionInput struct {
	OwnerID     int64
	Name        string
	Description *string
	Latitude    float64
	Longitude   float64
	Address     string
}

// Filter narrows admin listings.
type Filter struct {
	Status *Status
}
