package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"parkspot/internal/domain/storage"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/domain/votes"
	"parkspot/internal/mailer"
	"parkspot/internal/moderation"
	"parkspot/internal/notifications"
	"parkspot/internal/policy"
)

type castVotePayload struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type castVoteResponse struct {
	Vote      *votes.Vote             `json:"vote"`
	Park      *submissions.Submission `json:"park,omitempty"`
	Upvotes   int                     `json:"upvotes"`
	Downvotes int                     `json:"downvotes"`
	Status    submissions.Status      `json:"status"`
}

// newCastVoteResponse always carries the updated tallies and status; the
// full row rides along only when the caller could read the park anyway.
// Voting is open to any authenticated caller, reading is not.
func newCastVoteResponse(caller policy.Caller, vote *votes.Vote, park *submissions.Submission) castVoteResponse {
	resp := castVoteResponse{
		Vote:      vote,
		Upvotes:   park.Upvotes,
		Downvotes: park.Downvotes,
		Status:    park.Status,
	}
	if policy.CanReadSubmission(caller, park) {
		resp.Park = park
	}
	return resp
}

// castVoteHandler godoc
//
//	@Summary		Cast a vote on a park
//	@Description	One vote per caller per park; the vote, the recomputed tallies and any resulting status change commit together
//	@Tags			votes
//	@Accept			json
//	@Produce		json
//	@Param			parkID	path		int64			true	"Park ID"
//	@Param			payload	body		castVotePayload	true	"Vote direction"
//	@Success		201		{object}	castVoteResponse
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID}/votes [post]
func (app *application) castVoteHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	parkID, err := parseID(chi.URLParam(r, "parkID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid park ID"))
		return
	}

	var payload castVotePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !policy.CanCastVote(caller, caller.ID) {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	vote := &votes.Vote{
		SubmissionID: parkID,
		VoterID:      caller.ID,
		IsUpvote:     payload.Direction == "up",
	}

	var (
		updated    *submissions.Submission
		prevStatus moderation.Status
	)
	err = app.store.WithModerationTx(r.Context(), func(m *storage.ModerationTx) error {
		sub, err := m.Submissions.GetForUpdate(r.Context(), parkID)
		if err != nil {
			return err
		}
		prevStatus = sub.Status

		if err := m.Votes.Cast(r.Context(), vote); err != nil {
			return err
		}

		tally, err := m.Votes.TallyFor(r.Context(), parkID)
		if err != nil {
			return err
		}

		// votes on a decided submission still land in the ledger, but the
		// status is frozen
		next := moderation.Evaluate(sub.Status, tally.Upvotes, tally.Downvotes)

		if err := m.Submissions.SetTally(r.Context(), parkID, tally.Upvotes, tally.Downvotes, next); err != nil {
			return err
		}

		sub.Upvotes = tally.Upvotes
		sub.Downvotes = tally.Downvotes
		sub.Status = next
		updated = sub
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, submissions.ErrSubmissionNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, votes.ErrDuplicateVote):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if prevStatus == moderation.StatusPending && updated.Status.Terminal() {
		app.notifyModerationDecision(updated)
	}

	resp := newCastVoteResponse(caller, vote, updated)
	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifyModerationDecision fans out the decision after the transaction has
// committed: a push to the owner's devices and an email to the moderation
// inbox. Failures are logged, never surfaced to the voter.
func (app *application) notifyModerationDecision(sub *submissions.Submission) {
	snapshot := *sub

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := notifications.SendModerationDecision(ctx, app.push, app.store, &snapshot, snapshot.Status); err != nil {
			app.logger.Warnw("moderation push failed", "park_id", snapshot.ID, "error", err)
		}

		tmpl := mailer.SubmissionApprovedTemplate
		if snapshot.Status == moderation.StatusRejected {
			tmpl = mailer.SubmissionRejectedTemplate
		}

		data := map[string]any{
			"ParkName":  snapshot.Name,
			"ParkID":    snapshot.ID,
			"Upvotes":   snapshot.Upvotes,
			"Downvotes": snapshot.Downvotes,
		}

		status, err := app.mailer.Send(tmpl, "moderators", app.config.mail.moderationInbox, data)
		if err != nil {
			app.logger.Errorw("moderation email failed", "park_id", snapshot.ID, "error", err)
			return
		}
		app.logger.Infow("moderation decision sent", "park_id", snapshot.ID, "status", string(snapshot.Status), "email_status", status)
	}()
}

// getMyVoteHandler godoc
//
//	@Summary		Get the caller's vote on a park
//	@Tags			votes
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Success		200		{object}	votes.Vote
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID}/votes/me [get]
func (app *application) getMyVoteHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	parkID, err := parseID(chi.URLParam(r, "parkID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid park ID"))
		return
	}

	vote, err := app.store.Votes.GetForVoter(r.Context(), parkID, caller.ID)
	if err != nil {
		if errors.Is(err, votes.ErrVoteNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !policy.CanReadVote(caller, vote) {
		app.notFoundResponse(w, r, votes.ErrVoteNotFound)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, vote); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMyVotesHandler godoc
//
//	@Summary		List every vote the caller has cast
//	@Tags			votes
//	@Produce		json
//	@Success		200	{array}		votes.Vote
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me/votes [get]
func (app *application) listMyVotesHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !caller.Authenticated() {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	rows, err := app.store.Votes.ListByVoter(r.Context(), caller.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rows); err != nil {
		app.internalServerError(w, r, err)
	}
}
