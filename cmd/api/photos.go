package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parkspot/internal/domain/photos"
	"parkspot/internal/policy"
)

const maxPhotoBytes = 5 * 1024 * 1024

// uploadParkPhotoHandler godoc
//
//	@Summary		Attach a photo to a park
//	@Description	Accepts multipart form data with a "photo" file; the photo starts unapproved
//	@Tags			photos
//	@Accept			mpfd
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Param			photo	formData	file	true	"Image file"
//	@Success		201		{object}	photos.Photo
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID}/photos [post]
func (app *application) uploadParkPhotoHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanCreatePhoto(caller) {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("photo file is required"))
		return
	}
	defer file.Close()

	url, err := app.uploadParkPhoto(r.Context(), file, sub.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	photo := &photos.Photo{
		SubmissionID: sub.ID,
		URL:          url,
		UploaderID:   caller.ID,
	}
	if err := app.store.Photos.Create(r.Context(), photo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, photo); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listParkPhotosHandler godoc
//
//	@Summary		List a park's photos
//	@Description	Unapproved photos only show for their uploader and admins
//	@Tags			photos
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Success		200		{array}		photos.Photo
//	@Failure		404		{object}	error
//	@Router			/parks/{parkID}/photos [get]
func (app *application) listParkPhotosHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	rows, err := app.store.Photos.ListForSubmission(r.Context(), sub.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	visible := make([]photos.Photo, 0, len(rows))
	for i := range rows {
		if policy.CanReadPhoto(caller, &rows[i]) {
			visible = append(visible, rows[i])
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, visible); err != nil {
		app.internalServerError(w, r, err)
	}
}

// approvePhotoHandler godoc
//
//	@Summary		Approve a photo (admin)
//	@Tags			admin
//	@Param			photoID	path	int64	true	"Photo ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/photos/{photoID}/approve [patch]
func (app *application) approvePhotoHandler(w http.ResponseWriter, r *http.Request) {
	app.setPhotoApproval(w, r, true)
}

// unapprovePhotoHandler godoc
//
//	@Summary		Revoke a photo's approval (admin)
//	@Tags			admin
//	@Param			photoID	path	int64	true	"Photo ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/photos/{photoID}/unapprove [patch]
func (app *application) unapprovePhotoHandler(w http.ResponseWriter, r *http.Request) {
	app.setPhotoApproval(w, r, false)
}

// deletePhotoHandler godoc
//
//	@Summary		Delete a photo (admin)
//	@Description	Removes the database row and the stored binary
//	@Tags			admin
//	@Param			photoID	path	int64	true	"Photo ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/photos/{photoID} [delete]
func (app *application) deletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanModeratePhoto(caller) {
		app.forbiddenResponse(w, r)
		return
	}

	photoID, err := parseID(chi.URLParam(r, "photoID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid photo ID"))
		return
	}

	photo, err := app.store.Photos.GetByID(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Photos.Delete(r.Context(), photoID); err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	// the row is gone either way; a stale binary is only a storage leak
	if err := app.deletePhotoAsset(r.Context(), photo.URL); err != nil {
		app.logger.Warnw("photo asset cleanup failed", "photo_id", photoID, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) setPhotoApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	caller := getCallerFromContext(r)
	if !policy.CanModeratePhoto(caller) {
		app.forbiddenResponse(w, r)
		return
	}

	photoID, err := parseID(chi.URLParam(r, "photoID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid photo ID"))
		return
	}

	if err := app.store.Photos.SetApproved(r.Context(), photoID, approved); err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
