package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Sessions are looked up and revoked by the SHA-256
// hash of the signed token, never by the token itself.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateSession inserts a new session row.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, createSession,
		session.UUID,
		session.UserUUID,
		session.TokenHash,
		session.UserAgent,
		session.APIVersion,
		session.ReadOnly,
		session.CreatedAt,
		session.ExpiresAt,
		session.AnalyticsID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.CreateSession").
			Str("user_uuid", session.UserUUID).
			Str("pg_code", postgresError(err)).
			Msg("failed to insert session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// FindSessionByTokenHash returns the session row matching the given token
// hash, or [ErrSessionNotFound] when the session has been revoked or never
// existed.
func (r *sessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session

	err := r.DB.QueryRowContext(ctx, findSessionByTokenHash, tokenHash).Scan(
		&session.UUID,
		&session.UserUUID,
		&session.TokenHash,
		&session.UserAgent,
		&session.APIVersion,
		&session.ReadOnly,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.AnalyticsID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).
			Str("func", "sessionRepository.FindSessionByTokenHash").
			Msg("failed to execute session lookup query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// DeleteSessionByTokenHash removes the session row matching the given token
// hash. Returns [ErrSessionNotFound] when no row matched, so callers can
// report a sign-out against an already-revoked session.
func (r *sessionRepository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteSessionByTokenHash, tokenHash)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.DeleteSessionByTokenHash").
			Msg("failed to execute session delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, affectedErr := result.RowsAffected(); affectedErr == nil && affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
