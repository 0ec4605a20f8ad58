// Package moderation holds the rule that turns a submission's vote tallies
// into a moderation decision. It is pure: callers load the current state and
// tallies, ask Evaluate for the next state, and persist the result themselves.
package moderation

// Status is a submission's moderation state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision thresholds. A submission is decided once enough votes lean one
// way: at least ApprovalMinUpvotes upvotes (or RejectionMinDownvotes
// downvotes) making up at least DecisionRatio of all votes cast.
const (
	ApprovalMinUpvotes    = 10
	RejectionMinDownvotes = 5
	DecisionRatio         = 0.70
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Evaluate returns the state a submission should hold given its current
// state and vote tallies. Approved and rejected are terminal: once reached,
// further votes are tallied but never move the state. Approval is checked
// before rejection.
func Evaluate(current Status, upvotes, downvotes int) Status {
	if current.Terminal() {
		return current
	}

	total := upvotes + downvotes

	if upvotes >= ApprovalMinUpvotes && float64(upvotes)/float64(total) >= DecisionRatio {
		return StatusApproved
	}
	if downvotes >= RejectionMinDownvotes && float64(downvotes)/float64(total) >= DecisionRatio {
		return StatusRejected
	}
	return StatusPending
}
