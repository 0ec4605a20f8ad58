package main

import (
	"encoding/json"
	"errors"
	"net/http"
)

type savePushTokenPayload struct {
	Token      string          `json:"token" validate:"required"`
	DeviceInfo json.RawMessage `json:"device_info"`
}

type removePushTokenPayload struct {
	Token string `json:"token" validate:"required"`
}

type bulkRemoveTokensPayload struct {
	Tokens []string `json:"tokens" validate:"required,min=1,dive,required"`
}

// registerPushTokenHandler godoc
//
//	@Summary		Save or update a push notification token
//	@Description	Stores the caller's Expo push token along with optional device info
//	@Tags			notifications
//	@Accept			json
//	@Param			payload	body	savePushTokenPayload	true	"Push token data"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [post]
func (app *application) registerPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !caller.Authenticated() {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	var payload savePushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.AddOrUpdatePushToken(r.Context(), caller.ID, payload.Token, payload.DeviceInfo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removePushTokenHandler godoc
//
//	@Summary		Remove a push notification token
//	@Tags			notifications
//	@Accept			json
//	@Param			payload	body	removePushTokenPayload	true	"Token to remove"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !caller.Authenticated() {
		app.unauthorizedErrorResponse(w, r, errors.New("authentication required"))
		return
	}

	var payload removePushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.RemovePushToken(r.Context(), caller.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// bulkRemovePushTokensHandler godoc
//
//	@Summary		Bulk remove push notification tokens (admin)
//	@Description	Drops tokens the push provider reported as no longer registered
//	@Tags			admin
//	@Accept			json
//	@Param			payload	body	bulkRemoveTokensPayload	true	"Tokens to remove"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		403	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/push-tokens/bulk-remove [post]
func (app *application) bulkRemovePushTokensHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)
	if !caller.IsAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	var payload bulkRemoveTokensPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.RemoveTokensByTokenList(r.Context(), payload.Tokens); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
