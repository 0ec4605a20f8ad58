package votes

import (
	"errors"
	"time"
)

const QueryTimeoutDuration = time.Second * 5

// ErrDuplicateVote means this voter already has a vote on this submission.
// Votes are immutable, so the second attempt is rejected, never merged.
var ErrDuplicateVote = errors.New("voter has already voted on this submission")

var ErrVoteNotFound = errors.New("vote not found")

// Vote is one row of the ledger: a single voter's up or down on a single
// submission. Rows are insert-only; there is no update path.
type Vote struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	VoterID      int64     `json:"voter_id"`
	IsUpvote     bool      `json:"is_upvote"`
	CreatedAt    time.Time `json:"created_at"`
}

// Tally is the aggregate of the ledger for one submission.
type Tally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
