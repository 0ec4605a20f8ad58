package comments

import (
	"errors"
	"time"
)

const QueryTimeoutDuration = time.Second * 5

var ErrCommentNotFound = errors.New("comment not found")

// Comment on a submission. is_reported suppresses visibility for everyone
// but the author and admins; the text itself is never rewritten.
type Comment struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	AuthorID     int64     `json:"author_id"`
	Body         string    `json:"body"`
	IsReported   bool      `json:"is_reported"`
	CreatedAt    time.Time `json:"created_at"`
}
