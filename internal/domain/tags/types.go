package tags

import (
	"errors"
	"time"
)

const QueryTimeoutDuration = time.Second * 5

var ErrDuplicateTag = errors.New("submission already carries this tag")

// Tag is free-text labeling of a submission. Tags are unmoderated and
// always visible.
type Tag struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}
