package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/models"
)

// ItemSaveValidation is the per-hash input of the save rule chain.
type ItemSaveValidation struct {
	UserUUID   string
	APIVersion string
	ItemHash   models.ItemHash
}

// RuleResult is the outcome of a single save rule: either the hash passed,
// or it is rejected with the conflict record to report. Only the first
// failing rule's conflict is ever reported for a given hash.
type RuleResult struct {
	Passed   bool
	Conflict *models.ConflictRecord
}

// SaveRule is one checker in the validation rule chain. Rules are pure
// functions of their input apart from read-only lookups; they never write.
type SaveRule interface {
	Check(ctx context.Context, dto ItemSaveValidation) (RuleResult, error)
}

// SaveValidator runs the configured rules in declared order and
// short-circuits on the first failure.
type SaveValidator struct {
	rules []SaveRule
}

// NewSaveValidator builds a validator over the given rules. Order matters:
// it is part of the pipeline contract.
func NewSaveValidator(rules ...SaveRule) *SaveValidator {
	return &SaveValidator{rules: rules}
}

// Validate runs the rule chain for one item hash.
func (v *SaveValidator) Validate(ctx context.Context, dto ItemSaveValidation) (RuleResult, error) {
	for _, rule := range v.rules {
		result, err := rule.Check(ctx, dto)
		if err != nil {
			return RuleResult{}, fmt.Errorf("error running save rule: %w", err)
		}

		if !result.Passed {
			return result, nil
		}
	}

	return RuleResult{Passed: true}, nil
}

// ContentTypeFilter rejects item hashes whose content type is outside the
// recognized enumeration.
type ContentTypeFilter struct{}

func NewContentTypeFilter() *ContentTypeFilter {
	return &ContentTypeFilter{}
}

func (f *ContentTypeFilter) Check(_ context.Context, dto ItemSaveValidation) (RuleResult, error) {
	if !models.IsValidContentType(models.ContentType(dto.ItemHash.ContentType)) {
		unsaved := dto.ItemHash
		return RuleResult{
			Passed: false,
			Conflict: &models.ConflictRecord{
				UnsavedItem: &unsaved,
				Type:        models.ContentTypeError,
			},
		}, nil
	}

	return RuleResult{Passed: true}, nil
}

// ContentSizeFilter rejects item hashes whose encrypted content exceeds the
// configured byte limit. A zero limit disables the check.
type ContentSizeFilter struct {
	maxBytes int
}

func NewContentSizeFilter(maxBytes int) *ContentSizeFilter {
	return &ContentSizeFilter{maxBytes: maxBytes}
}

func (f *ContentSizeFilter) Check(_ context.Context, dto ItemSaveValidation) (RuleResult, error) {
	if f.maxBytes > 0 && len(dto.ItemHash.Content) > f.maxBytes {
		unsaved := dto.ItemHash
		return RuleResult{
			Passed: false,
			Conflict: &models.ConflictRecord{
				UnsavedItem: &unsaved,
				Type:        models.ContentError,
			},
		}, nil
	}

	return RuleResult{Passed: true}, nil
}

// OwnershipFilter rejects item hashes whose UUID is already persisted under
// a different user. The lookup is read-only.
type OwnershipFilter struct {
	items store.ItemRepository
}

func NewOwnershipFilter(items store.ItemRepository) *OwnershipFilter {
	return &OwnershipFilter{items: items}
}

func (f *OwnershipFilter) Check(ctx context.Context, dto ItemSaveValidation) (RuleResult, error) {
	existing, err := f.items.FindByUUID(ctx, dto.ItemHash.UUID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return RuleResult{Passed: true}, nil
		}
		return RuleResult{}, err
	}

	if existing.UserUUID != dto.UserUUID {
		unsaved := dto.ItemHash
		return RuleResult{
			Passed: false,
			Conflict: &models.ConflictRecord{
				UnsavedItem: &unsaved,
				Type:        models.UUIDConflict,
			},
		}, nil
	}

	return RuleResult{Passed: true}, nil
}
