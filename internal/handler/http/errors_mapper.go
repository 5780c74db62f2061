package http

import (
	"errors"
	"net/http"

	"github.com/elgohr-update/syncing-server/internal/service"
	"github.com/elgohr-update/syncing-server/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidSyncToken:    http.StatusBadRequest,
	service.ErrNoUserUUID:          http.StatusBadRequest,
	service.ErrInvalidSessionToken: http.StatusUnauthorized,
	service.ErrSessionNotFound:     http.StatusUnauthorized,

	store.ErrItemNotFound:    http.StatusNotFound,
	store.ErrItemsNotSaved:   http.StatusInternalServerError,
	store.ErrSessionNotFound: http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
