package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"parkspot/internal/domain/submissions"
	"parkspot/internal/params"
	"parkspot/internal/policy"
)

type createParkPayload struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	Address     string  `json:"address" validate:"max=500"`
}

type parkResponse struct {
	*submissions.Submission
	ShareCode string `json:"share_code,omitempty"`
}

// share codes only exist for parks the public can see
func (app *application) toParkResponse(s *submissions.Submission) parkResponse {
	resp := parkResponse{Submission: s}
	if s.Status == submissions.StatusApproved {
		if code, err := app.shareCodes.Encode(s.ID); err == nil {
			resp.ShareCode = code
		}
	}
	return resp
}

// createParkHandler godoc
//
//	@Summary		Submit a new park
//	@Description	Creates a pending submission owned by the caller
//	@Tags			parks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createParkPayload	true	"Park submission"
//	@Success		201		{object}	submissions.Submission
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks [post]
func (app *application) createParkHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !policy.CanCreateSubmission(caller) {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	var payload createParkPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in := &submissions.CreateSubmissionInput{
		OwnerID:     caller.ID,
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		Address:     strings.TrimSpace(payload.Address),
	}

	created, err := app.store.Submissions.Create(r.Context(), in)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listParksHandler godoc
//
//	@Summary		List parks visible to the caller
//	@Description	Approved parks for everyone; pending ones only for their owner; admins see all
//	@Tags			parks
//	@Produce		json
//	@Param			page	query		int	false	"page number"
//	@Param			limit	query		int	false	"page size (max 30)"
//	@Success		200		{object}	map[string]any
//	@Router			/parks [get]
func (app *application) listParksHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	p := params.ParsePagination(r.URL.Query())

	rows, total, err := app.store.Submissions.List(r.Context(), submissions.Filter{}, p)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	// every row goes through the evaluator; the page may come back smaller
	// than the limit when hidden rows fall out
	visible := make([]parkResponse, 0, len(rows))
	for i := range rows {
		if policy.CanReadSubmission(caller, &rows[i]) {
			visible = append(visible, app.toParkResponse(&rows[i]))
		}
	}

	response := map[string]any{
		"parks":      visible,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getParkHandler godoc
//
//	@Summary		Get one park
//	@Tags			parks
//	@Produce		json
//	@Param			parkID	path		int64	true	"Park ID"
//	@Success		200		{object}	parkResponse
//	@Failure		404		{object}	error
//	@Router			/parks/{parkID} [get]
func (app *application) getParkHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := app.visiblePark(w, r)
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.toParkResponse(sub)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getParkByCodeHandler godoc
//
//	@Summary		Resolve a share code
//	@Tags			parks
//	@Produce		json
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{object}	parkResponse
//	@Failure		404		{object}	error
//	@Router			/parks/code/{code} [get]
func (app *application) getParkByCodeHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	parkID, err := app.shareCodes.Decode(chi.URLParam(r, "code"))
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	sub, err := app.store.Submissions.GetByID(r.Context(), parkID)
	if err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !policy.CanReadSubmission(caller, sub) {
		app.notFoundResponse(w, r, submissions.ErrSubmissionNotFound)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.toParkResponse(sub)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteParkHandler godoc
//
//	@Summary		Delete a park (admin)
//	@Description	Removes the submission and, via cascade, its votes, photos, comments and tags
//	@Tags			parks
//	@Param			parkID	path	int64	true	"Park ID"
//	@Success		200		{object}	map[string]string
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/parks/{parkID} [delete]
func (app *application) deleteParkHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	parkID, err := parseID(chi.URLParam(r, "parkID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid park ID"))
		return
	}

	sub, err := app.store.Submissions.GetByID(r.Context(), parkID)
	if err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !policy.CanWriteSubmission(caller, sub) {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Submissions.Delete(r.Context(), parkID); err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "park deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminListParksHandler godoc
//
//	@Summary		List parks by status (admin)
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"pending|approved|rejected"
//	@Param			page	query		int		false	"page number"
//	@Param			limit	query		int		false	"page size"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/parks [get]
func (app *application) adminListParksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	var filter submissions.Filter
	if s := strings.TrimSpace(q.Get("status")); s != "" {
		status := submissions.Status(s)
		if !status.Valid() {
			app.badRequestResponse(w, r, errors.New("invalid status"))
			return
		}
		filter.Status = &status
	}

	rows, total, err := app.store.Submissions.List(r.Context(), filter, p)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"parks":      rows,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// visiblePark loads the park from the route and checks the caller may see
// it. On any failure it writes the response itself and reports false; a park
// the caller cannot see reads as absent.
func (app *application) visiblePark(w http.ResponseWriter, r *http.Request) (*submissions.Submission, bool) {
	caller := getCallerFromContext(r)

	parkID, err := parseID(chi.URLParam(r, "parkID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid park ID"))
		return nil, false
	}

	sub, err := app.store.Submissions.GetByID(r.Context(), parkID)
	if err != nil {
		if errors.Is(err, submissions.ErrSubmissionNotFound) {
			app.notFoundResponse(w, r, err)
			return nil, false
		}
		app.internalServerError(w, r, err)
		return nil, false
	}

	if !policy.CanReadSubmission(caller, sub) {
		app.notFoundResponse(w, r, submissions.ErrSubmissionNotFound)
		return nil, false
	}
	return sub, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid ID")
	}
	return id, nil
}
