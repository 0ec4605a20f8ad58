package main

import (
	"errors"
	"net/http"
	"strings"

	"parkspot/internal/domain/tags"
	"parkspot/internal/policy"
)

type createTagPayload struct {
	Name string `json:"name" validate:"required,max=50"`
}

// createParkTagHandler godoc
//
//	@Summary		Tag a park
//	@Description	Tag names are unique per park; repeats are rejected
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Param			parkID	path		int64				true	"Park ID"
//	@Param			payload	body		createTagPayload	true	"Tag"
//	@Success		201		{object}	tags.Tag
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID}/tags [post]
func (app *application) createParkTagHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanCreateTag(caller) {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	var payload createTagPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tag := &tags.Tag{
		SubmissionID: sub.ID,
		Name:         strings.ToLower(strings.TrimSpace(payload.Name)),
	}
	if err := app.store.Tags.Create(r.Context(), tag); err != nil {
		if errors.Is(err, tags.ErrDuplicateTag) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, tag); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listParkTagsHandler godoc
//
//	@Summary		List a park's tags
//	@Tags			tags
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Success		200		{array}		tags.Tag
//	@Failure		404		{object}	error
//	@Router			/parks/{parkID}/tags [get]
func (app *application) listParkTagsHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}
	if !policy.CanReadTag(caller) {
		app.forbiddenResponse(w, r)
		return
	}

	rows, err := app.store.Tags.ListForSubmission(r.Context(), sub.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rows); err != nil {
		app.internalServerError(w, r, err)
	}
}
