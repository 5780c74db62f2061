package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/service"
	"github.com/elgohr-update/syncing-server/internal/utils"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// resolves it via [service.SessionService.LookupSession], and — on success —
// stores the session's user UUID and read-only flag in the request context
// under [utils.UserUUIDCtxKey] and [utils.ReadOnlyCtxKey] before delegating
// to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token fails validation ([service.ErrInvalidSessionToken]).
//   - The token is valid but its session row was revoked
//     ([service.ErrSessionNotFound]).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionService.LookupSession(ctx, tokenString)

		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidSessionToken):
				log.Err(err).Msg("invalid session token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			case errors.Is(err, service.ErrSessionNotFound):
				log.Err(err).Msg("session revoked or expired")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during session lookup")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		// Store the session identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserUUIDCtxKey, session.UserUUID)
		ctx = context.WithValue(ctx, utils.ReadOnlyCtxKey, session.ReadOnly)
		if session.AnalyticsID != nil {
			ctx = context.WithValue(ctx, utils.AnalyticsIDCtxKey, *session.AnalyticsID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
