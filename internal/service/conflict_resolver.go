package service

import (
	"context"
	"errors"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/models"
)

// saveDecision is the write outcome for one item hash that passed the
// validation rule chain.
type saveDecision int

const (
	// decideInsert: no server-side counterpart exists, write as new.
	decideInsert saveDecision = iota

	// decideOverwrite: the server copy is not newer than the client's basis,
	// write over it.
	decideOverwrite

	// decideConflict: the server copy was modified after the client's basis,
	// reject the write and report a sync conflict.
	decideConflict

	// decideDuplicate: the hash declares duplicate_of; persist it under its
	// own identifier and report a uuid conflict referencing the original.
	decideDuplicate
)

// resolution combines the decision with the conflict record to report, when
// any. decideConflict and decideDuplicate carry a non-nil conflict.
type resolution struct {
	decision saveDecision
	conflict *models.ConflictRecord
}

// ConflictResolver decides, per incoming item hash, whether it can be
// written as-is, must be rejected with a conflict record, or represents a
// duplicate-content submission.
//
// The duplicate_of check runs before the timestamp race check: a duplicate
// submission is explicit client intent and is never reinterpreted as a stale
// overwrite.
type ConflictResolver struct {
	items  store.ItemRepository
	timer  Timer
	logger *logger.Logger
}

// NewConflictResolver constructs a [ConflictResolver] over the given item
// store and clock.
func NewConflictResolver(items store.ItemRepository, timer Timer, logger *logger.Logger) *ConflictResolver {
	return &ConflictResolver{
		items:  items,
		timer:  timer,
		logger: logger,
	}
}

// Resolve compares the incoming hash against the current server-side state.
// existing is nil when the user has no item with the hash's uuid.
func (r *ConflictResolver) Resolve(ctx context.Context, dto ItemSaveValidation, existing *models.Item) (resolution, error) {
	if dto.ItemHash.DuplicateOf != nil && *dto.ItemHash.DuplicateOf != "" {
		return r.resolveDuplicate(ctx, dto)
	}

	if existing == nil {
		return resolution{decision: decideInsert}, nil
	}

	if r.itemHashIsStale(ctx, dto, existing) {
		return resolution{
			decision: decideConflict,
			conflict: &models.ConflictRecord{
				ServerItem: existing,
				Type:       models.SyncConflict,
			},
		}, nil
	}

	return resolution{decision: decideOverwrite}, nil
}

// resolveDuplicate handles a duplicate-content submission: the hash is
// persisted under its own identifier, and a uuid conflict referencing the
// original is reported. A duplicate_of pointing at a missing original is
// still reported, with an absent server item.
func (r *ConflictResolver) resolveDuplicate(ctx context.Context, dto ItemSaveValidation) (resolution, error) {
	log := logger.FromContext(ctx)

	conflict := &models.ConflictRecord{Type: models.UUIDConflict}

	original, err := r.items.FindByUUIDAndUserUUID(ctx, *dto.ItemHash.DuplicateOf, dto.UserUUID)
	switch {
	case err == nil:
		conflict.ServerItem = &original

	case errors.Is(err, store.ErrItemNotFound):
		log.Warn().
			Str("func", "ConflictResolver.resolveDuplicate").
			Str("uuid", dto.ItemHash.UUID).
			Str("duplicate_of", *dto.ItemHash.DuplicateOf).
			Msg("duplicate_of references a missing original")

	default:
		return resolution{}, err
	}

	return resolution{decision: decideDuplicate, conflict: conflict}, nil
}

// itemHashIsStale reports whether the server copy was modified after the
// client's basis. The basis is the hash's own updated_at: clients echo the
// server timestamp of the copy they edited, so a mismatch means another
// device wrote in between.
//
// Protocol versions from 20190520 on compare at exact microsecond equality;
// older clients round-trip timestamps at second resolution and are granted a
// one-second tolerance.
func (r *ConflictResolver) itemHashIsStale(ctx context.Context, dto ItemSaveValidation, existing *models.Item) bool {
	log := logger.FromContext(ctx)

	var incomingTimestamp int64
	if dto.ItemHash.UpdatedAt != "" {
		parsed, err := r.timer.ConvertStringDateToMicroseconds(dto.ItemHash.UpdatedAt)
		if err != nil {
			log.Warn().
				Str("func", "ConflictResolver.itemHashIsStale").
				Str("uuid", dto.ItemHash.UUID).
				Str("updated_at", dto.ItemHash.UpdatedAt).
				Msg("unparsable incoming updated_at, treating basis as epoch")
		} else {
			incomingTimestamp = parsed
		}
	}

	difference := incomingTimestamp - existing.UpdatedAtTimestamp

	switch dto.APIVersion {
	case models.NormalizeAPIVersion(models.APIVersion20190520),
		models.NormalizeAPIVersion(models.APIVersion20200115):
		return difference != 0
	default:
		return difference > microsecondsInASecond || difference < -microsecondsInASecond
	}
}
