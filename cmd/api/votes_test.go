package main

import (
	"testing"

	"parkspot/internal/domain/submissions"
	"parkspot/internal/domain/votes"
	"parkspot/internal/policy"
)

func TestNewCastVoteResponseGatesParkRow(t *testing.T) {
	const ownerID = 7

	vote := &votes.Vote{SubmissionID: 1, VoterID: 8, IsUpvote: true}

	park := func(status submissions.Status) *submissions.Submission {
		return &submissions.Submission{
			ID:        1,
			OwnerID:   ownerID,
			Name:      "Riverside Commons",
			Status:    status,
			Upvotes:   3,
			Downvotes: 1,
		}
	}

	tests := []struct {
		name     string
		caller   policy.Caller
		status   submissions.Status
		wantPark bool
	}{
		{"non-owner voting on pending park", policy.Caller{ID: 8}, submissions.StatusPending, false},
		{"non-owner voting on rejected park", policy.Caller{ID: 8}, submissions.StatusRejected, false},
		{"owner voting on own pending park", policy.Caller{ID: ownerID}, submissions.StatusPending, true},
		{"anyone voting on approved park", policy.Caller{ID: 8}, submissions.StatusApproved, true},
		{"admin voting on pending park", policy.Caller{ID: 99, IsAdmin: true}, submissions.StatusPending, true},
		{"admin voting on rejected park", policy.Caller{ID: 99, IsAdmin: true}, submissions.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newCastVoteResponse(tt.caller, vote, park(tt.status))

			if got := resp.Park != nil; got != tt.wantPark {
				t.Errorf("park included = %v, want %v", got, tt.wantPark)
			}
			if resp.Upvotes != 3 || resp.Downvotes != 1 {
				t.Errorf("tallies = %d/%d, want 3/1", resp.Upvotes, resp.Downvotes)
			}
			if resp.Status != tt.status {
				t.Errorf("status = %q, want %q", resp.Status, tt.status)
			}
			if resp.Vote != vote {
				t.Error("response must carry the accepted vote")
			}
		})
	}
}
