package photos

import (
	"errors"
	"time"
)

const QueryTimeoutDuration = time.Second * 5

var ErrPhotoNotFound = errors.New("photo not found")

// Photo stores a reference URL only; the binary lives in object storage.
// is_approved is an independent moderation flag flipped by admins, not by
// the vote ledger.
type Photo struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	URL          string    `json:"url"`
	UploaderID   int64     `json:"uploader_id"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}
