package policy

import (
	"testing"

	"parkspot/internal/domain/comments"
	"parkspot/internal/domain/photos"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/domain/votes"
)

var (
	anon  = Anonymous()
	owner = Caller{ID: 7}
	other = Caller{ID: 8}
	admin = Caller{ID: 99, IsAdmin: true}
)

func TestCanReadSubmission(t *testing.T) {
	sub := func(status submissions.Status) *submissions.Submission {
		return &submissions.Submission{ID: 1, OwnerID: owner.ID, Status: status}
	}

	tests := []struct {
		name   string
		caller Caller
		status submissions.Status
		want   bool
	}{
		{"anonymous reads approved", anon, submissions.StatusApproved, true},
		{"anonymous cannot read pending", anon, submissions.StatusPending, false},
		{"anonymous cannot read rejected", anon, submissions.StatusRejected, false},
		{"owner reads own pending", owner, submissions.StatusPending, true},
		{"other authenticated cannot read pending", other, submissions.StatusPending, false},
		{"owner cannot read own rejected", owner, submissions.StatusRejected, false},
		{"other reads approved", other, submissions.StatusApproved, true},
		{"admin reads pending", admin, submissions.StatusPending, true},
		{"admin reads rejected", admin, submissions.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadSubmission(tt.caller, sub(tt.status)); got != tt.want {
				t.Errorf("CanReadSubmission = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmissionWrites(t *testing.T) {
	if CanCreateSubmission(anon) {
		t.Error("anonymous caller must not create submissions")
	}
	if !CanCreateSubmission(other) {
		t.Error("any authenticated caller may create submissions")
	}

	s := &submissions.Submission{ID: 1, OwnerID: owner.ID, Status: submissions.StatusPending}
	if CanWriteSubmission(owner, s) {
		t.Error("owners do not get write access to moderated fields")
	}
	if !CanWriteSubmission(admin, s) {
		t.Error("admin writes unconditionally")
	}
}

func TestCanCastVote(t *testing.T) {
	if !CanCastVote(owner, owner.ID) {
		t.Error("caller may vote as themselves")
	}
	if CanCastVote(owner, other.ID) {
		t.Error("caller must not record a vote for someone else")
	}
	if CanCastVote(anon, 0) {
		t.Error("anonymous caller must not vote")
	}
}

func TestCanReadVote(t *testing.T) {
	v := &votes.Vote{ID: 1, SubmissionID: 1, VoterID: owner.ID, IsUpvote: true}

	if !CanReadVote(owner, v) {
		t.Error("voter reads their own vote")
	}
	if CanReadVote(other, v) {
		t.Error("votes are private to the voter")
	}
	if CanReadVote(anon, v) {
		t.Error("anonymous caller reads no votes")
	}
	if !CanReadVote(admin, v) {
		t.Error("admin reads any vote")
	}
}

func TestCanReadPhoto(t *testing.T) {
	approved := &photos.Photo{ID: 1, UploaderID: owner.ID, IsApproved: true}
	unapproved := &photos.Photo{ID: 2, UploaderID: owner.ID, IsApproved: false}

	tests := []struct {
		name   string
		caller Caller
		photo  *photos.Photo
		want   bool
	}{
		{"anonymous reads approved photo", anon, approved, true},
		{"anonymous cannot read unapproved photo", anon, unapproved, false},
		{"uploader reads own unapproved photo", owner, unapproved, true},
		{"other cannot read unapproved photo", other, unapproved, false},
		{"admin reads unapproved photo", admin, unapproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadPhoto(tt.caller, tt.photo); got != tt.want {
				t.Errorf("CanReadPhoto = %v, want %v", got, tt.want)
			}
		})
	}

	if CanCreatePhoto(anon) || !CanCreatePhoto(other) {
		t.Error("photo insert is for authenticated callers")
	}
	if CanModeratePhoto(owner) || !CanModeratePhoto(admin) {
		t.Error("photo approval is admin-only")
	}
}

func TestCanReadComment(t *testing.T) {
	clean := &comments.Comment{ID: 1, AuthorID: owner.ID, IsReported: false}
	reported := &comments.Comment{ID: 2, AuthorID: owner.ID, IsReported: true}

	tests := []struct {
		name    string
		caller  Caller
		comment *comments.Comment
		want    bool
	}{
		{"anonymous reads unreported comment", anon, clean, true},
		{"anonymous cannot read reported comment", anon, reported, false},
		{"author reads own reported comment", owner, reported, true},
		{"other cannot read reported comment", other, reported, false},
		{"admin reads reported comment", admin, reported, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadComment(tt.caller, tt.comment); got != tt.want {
				t.Errorf("CanReadComment = %v, want %v", got, tt.want)
			}
		})
	}

	if CanCreateComment(anon) || !CanCreateComment(other) {
		t.Error("comment insert is for authenticated callers")
	}
	if CanModerateComment(owner) || !CanModerateComment(admin) {
		t.Error("comment reporting is admin-only")
	}
}

func TestTags(t *testing.T) {
	if !CanReadTag(anon) || !CanReadTag(other) || !CanReadTag(admin) {
		t.Error("tags are always visible")
	}
	if CanCreateTag(anon) || !CanCreateTag(other) {
		t.Error("tag insert is for authenticated callers")
	}
}
