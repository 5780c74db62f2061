package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/store"
)

// integrityService derives the checksum clients compare across devices to
// detect silent data loss. The gateway returns the update timestamps of the
// user's non-deleted items sorted descending, so identical persisted state
// always yields an identical hash regardless of raw read order.
type integrityService struct {
	items  store.ItemRepository
	timer  Timer
	logger *logger.Logger
}

// NewIntegrityService constructs an [IntegrityService].
func NewIntegrityService(items store.ItemRepository, timer Timer, logger *logger.Logger) IntegrityService {
	return &integrityService{
		items:  items,
		timer:  timer,
		logger: logger,
	}
}

// ComputeIntegrityHash folds the user's ordered update timestamps, converted
// to the client-facing millisecond resolution, through SHA-256.
func (s *integrityService) ComputeIntegrityHash(ctx context.Context, userUUID string) (string, error) {
	log := logger.FromContext(ctx)

	if userUUID == "" {
		return "", ErrNoUserUUID
	}

	timestamps, err := s.items.FindDatesForIntegrityHash(ctx, userUUID)
	if err != nil {
		log.Err(err).
			Str("func", "integrityService.ComputeIntegrityHash").
			Str("user_uuid", userUUID).
			Msg("failed to retrieve dates for integrity hash")
		return "", fmt.Errorf("error computing integrity hash: %w", err)
	}

	parts := make([]string, 0, len(timestamps))
	for _, timestamp := range timestamps {
		parts = append(parts, strconv.FormatInt(s.timer.ConvertMicrosecondsToMilliseconds(timestamp), 10))
	}

	digest := sha256.Sum256([]byte(strings.Join(parts, ",")))

	return hex.EncodeToString(digest[:]), nil
}
