package http

import (
	"encoding/json"
	"net/http"

	"github.com/elgohr-update/syncing-server/internal/app"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/utils"
	"github.com/elgohr-update/syncing-server/models"
)

func (h *Handler) postSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.postSync").Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	// Identity comes from the authenticated session, never the body.
	userUUID, found := utils.GetUserUUIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.postSync").Msg(app.MsgNoUserUUIDProvided)
		http.Error(w, app.MsgNoUserUUIDProvided, http.StatusBadRequest)
		return
	}
	syncRequest.UserUUID = userUUID

	if readOnly, ok := utils.GetReadOnlyFromContext(ctx); ok {
		syncRequest.ReadOnlyAccess = readOnly
	}

	if analyticsID, ok := utils.GetAnalyticsIDFromContext(ctx); ok {
		syncRequest.AnalyticsID = &analyticsID
	}

	response, err := h.services.SyncService.SyncItems(ctx, syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.postSync").Msg(app.MsgErrorSyncingItems)
		http.Error(w, app.MsgErrorSyncingItems, statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
