package http

import (
	"errors"
	"net/http"

	"github.com/elgohr-update/syncing-server/internal/app"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/service"
	"github.com/elgohr-update/syncing-server/internal/utils"
)

// errorResponse is the JSON error envelope legacy clients expect on the auth
// surface.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func invalidAuthResponse() errorResponse {
	return errorResponse{Error: errorBody{
		Tag:     app.MsgInvalidAuthTag,
		Message: app.MsgInvalidLoginCredentials,
	}}
}

// signOut revokes the session carrying the bearer token. The route sits
// outside the auth middleware: a revocation attempt with a malformed or
// already-revoked token still answers with the auth error envelope rather
// than a bare 401.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.signOut").Send()
		utils.WriteJSON(w, invalidAuthResponse(), http.StatusUnauthorized)
		return
	}

	tokenString, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		log.Err(err).Str("func", "*Handler.signOut").Send()
		utils.WriteJSON(w, invalidAuthResponse(), http.StatusUnauthorized)
		return
	}

	if err := h.services.SessionService.DeleteSessionByToken(ctx, tokenString); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			log.Warn().Str("func", "*Handler.signOut").Msg("sign-out with unknown session token")
			utils.WriteJSON(w, invalidAuthResponse(), http.StatusUnauthorized)
			return
		}

		log.Err(err).Str("func", "*Handler.signOut").Msg("error deleting session")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
