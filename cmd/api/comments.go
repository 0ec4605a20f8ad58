package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"parkspot/internal/domain/comments"
	"parkspot/internal/policy"
)

type createCommentPayload struct {
	Body string `json:"body" validate:"required,max=1000"`
}

// createParkCommentHandler godoc
//
//	@Summary		Comment on a park
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			parkID	path		int64					true	"Park ID"
//	@Param			payload	body		createCommentPayload	true	"Comment"
//	@Success		201		{object}	comments.Comment
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID}/comments [post]
func (app *application) createParkCommentHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanCreateComment(caller) {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	var payload createCommentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment := &comments.Comment{
		SubmissionID: sub.ID,
		AuthorID:     caller.ID,
		Body:         strings.TrimSpace(payload.Body),
	}
	if err := app.store.Comments.Create(r.Context(), comment); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, comment); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listParkCommentsHandler godoc
//
//	@Summary		List a park's comments
//	@Description	Reported comments are suppressed for everyone but their author and admins
//	@Tags			comments
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Success		200		{array}		comments.Comment
//	@Failure		404		{object}	error
//	@Router			/parks/{parkID}/comments [get]
func (app *application) listParkCommentsHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	rows, err := app.store.Comments.ListForSubmission(r.Context(), sub.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	visible := make([]comments.Comment, 0, len(rows))
	for i := range rows {
		if policy.CanReadComment(caller, &rows[i]) {
			visible = append(visible, rows[i])
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, visible); err != nil {
		app.internalServerError(w, r, err)
	}
}

// reportCommentHandler godoc
//
//	@Summary		Mark a comment as reported (admin)
//	@Tags			admin
//	@Param			commentID	path	int64	true	"Comment ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/comments/{commentID}/report [patch]
func (app *application) reportCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.setCommentReported(w, r, true)
}

// unreportCommentHandler godoc
//
//	@Summary		Clear a comment's reported flag (admin)
//	@Tags			admin
//	@Param			commentID	path	int64	true	"Comment ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/comments/{commentID}/unreport [patch]
func (app *application) unreportCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.setCommentReported(w, r, false)
}

// deleteCommentHandler godoc
//
//	@Summary		Delete a comment (admin)
//	@Tags			admin
//	@Param			commentID	path	int64	true	"Comment ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/comments/{commentID} [delete]
func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanModerateComment(caller) {
		app.forbiddenResponse(w, r)
		return
	}

	commentID, err := parseID(chi.URLParam(r, "commentID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid comment ID"))
		return
	}

	if err := app.store.Comments.Delete(r.Context(), commentID); err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) setCommentReported(w http.ResponseWriter, r *http.Request, reported bool) {
	caller := getCallerFromContext(r)
	if !policy.CanModerateComment(caller) {
		app.forbiddenResponse(w, r)
		return
	}

	commentID, err := parseID(chi.URLParam(r, "commentID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid comment ID"))
		return
	}

	if err := app.store.Comments.SetReported(r.Context(), commentID, reported); err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
