// Package policy decides, per caller and per row, whether a read or write is
// allowed. It is the single authorization component: handlers build a Caller
// from the request identity and consult these functions before touching or
// returning any row. The functions are pure so the same rules apply no matter
// which storage backend produced the row.
package policy

import (
	"parkspot/internal/domain/comments"
	"parkspot/internal/domain/photos"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/domain/votes"
)

// Caller is the authenticated (or anonymous) identity behind a request.
// The identity provider supplies the ID and the admin capability; this
// package never authenticates, only authorizes.
type Caller struct {
	ID      int64
	IsAdmin bool
}

// Anonymous is the caller for requests with no credentials.
func Anonymous() Caller {
	return Caller{}
}

// Authenticated reports whether the caller carries an identity.
func (c Caller) Authenticated() bool {
	return c.ID != 0
}

// CanReadSubmission: approved parks are public, pending parks are visible to
// their owner, admins see everything. Rejected parks are admin-only.
func CanReadSubmission(c Caller, s *submissions.Submission) bool {
	if c.IsAdmin {
		return true
	}
	switch s.Status {
	case submissions.StatusApproved:
		return true
	case submissions.StatusPending:
		return c.Authenticated() && c.ID == s.OwnerID
	default:
		return false
	}
}

// CanCreateSubmission: any authenticated caller may submit a park.
func CanCreateSubmission(c Caller) bool {
	return c.Authenticated()
}

// CanWriteSubmission covers update and delete of an existing row.
func CanWriteSubmission(c Caller, s *submissions.Submission) bool {
	return c.IsAdmin
}

// CanCastVote: a caller may only record a vote as themselves.
func CanCastVote(c Caller, voterID int64) bool {
	return c.Authenticated() && c.ID == voterID
}

// CanReadVote: votes are visible to the voter who cast them and to admins.
func CanReadVote(c Caller, v *votes.Vote) bool {
	if c.IsAdmin {
		return true
	}
	return c.Authenticated() && c.ID == v.VoterID
}

// CanReadPhoto: approved photos are public; unapproved ones are visible to
// their uploader and to admins.
func CanReadPhoto(c Caller, p *photos.Photo) bool {
	if c.IsAdmin || p.IsApproved {
		return true
	}
	return c.Authenticated() && c.ID == p.UploaderID
}

// CanCreatePhoto: any authenticated caller may attach a photo.
func CanCreatePhoto(c Caller) bool {
	return c.Authenticated()
}

// CanModeratePhoto covers flipping the approval flag.
func CanModeratePhoto(c Caller) bool {
	return c.IsAdmin
}

// CanReadComment: reported comments are suppressed for everyone but their
// author and admins.
func CanReadComment(c Caller, cm *comments.Comment) bool {
	if c.IsAdmin || !cm.IsReported {
		return true
	}
	return c.Authenticated() && c.ID == cm.AuthorID
}

// CanCreateComment: any authenticated caller may comment.
func CanCreateComment(c Caller) bool {
	return c.Authenticated()
}

// CanModerateComment covers flipping the reported flag.
func CanModerateComment(c Caller) bool {
	return c.IsAdmin
}

// CanReadTag: tags are unmoderated and always visible.
func CanReadTag(c Caller) bool {
	return true
}

// CanCreateTag: any authenticated caller may tag a park.
func CanCreateTag(c Caller) bool {
	return c.Authenticated()
}
