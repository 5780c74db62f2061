package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/elgohr-update/syncing-server/internal/config"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/internal/utils"
	"github.com/elgohr-update/syncing-server/models"
)

// sessionTokenDuration is how long an issued session token stays valid.
const sessionTokenDuration = 30 * 24 * time.Hour

// sessionService issues, resolves, and revokes device sessions. Only a
// SHA-256 digest of the signed token is persisted, so a leaked sessions table
// cannot be replayed as credentials.
type sessionService struct {
	sessions store.SessionRepository
	uuidGen  *utils.UUIDGenerator
	cfg      config.App
	logger   *logger.Logger
}

// NewSessionService constructs a [SessionService].
func NewSessionService(sessions store.SessionRepository, uuidGen *utils.UUIDGenerator, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		uuidGen:  uuidGen,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateSession issues a signed session token for the user and persists the
// matching session row. Returns the session and the signed token string to
// hand back to the client.
func (s *sessionService) CreateSession(ctx context.Context, userUUID, userAgent, apiVersion string, readOnly bool, analyticsID *int64) (models.Session, string, error) {
	log := logger.FromContext(ctx)

	if userUUID == "" {
		return models.Session{}, "", ErrNoUserUUID
	}

	token, err := utils.GenerateSessionToken(s.cfg.TokenIssuer, userUUID, readOnly, sessionTokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		log.Err(err).
			Str("func", "sessionService.CreateSession").
			Str("user_uuid", userUUID).
			Msg("failed to generate session token")
		return models.Session{}, "", fmt.Errorf("error creating session: %w", err)
	}

	now := time.Now()
	expiresAt := token.ExpiresAt.Time

	session := models.Session{
		UUID:        s.uuidGen.Generate(),
		UserUUID:    userUUID,
		TokenHash:   hashSessionToken(token.SignedString),
		UserAgent:   userAgent,
		APIVersion:  models.NormalizeAPIVersion(apiVersion),
		ReadOnly:    readOnly,
		CreatedAt:   &now,
		ExpiresAt:   &expiresAt,
		AnalyticsID: analyticsID,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		log.Err(err).
			Str("func", "sessionService.CreateSession").
			Str("user_uuid", userUUID).
			Msg("failed to persist session")
		return models.Session{}, "", fmt.Errorf("error creating session: %w", err)
	}

	return session, token.SignedString, nil
}

// LookupSession validates the signed token and resolves the persisted session
// it belongs to. Both the signature and the session row must check out: a
// valid token whose session has been revoked yields [ErrSessionNotFound].
func (s *sessionService) LookupSession(ctx context.Context, tokenString string) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	session, err := s.sessions.FindSessionByTokenHash(ctx, hashSessionToken(tokenString))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).
			Str("func", "sessionService.LookupSession").
			Msg("failed to look up session")
		return models.Session{}, fmt.Errorf("error looking up session: %w", err)
	}

	if session.UserUUID != token.UserUUID {
		return models.Session{}, ErrInvalidSessionToken
	}

	return session, nil
}

// DeleteSessionByToken revokes the session carrying the given signed token.
func (s *sessionService) DeleteSessionByToken(ctx context.Context, tokenString string) error {
	err := s.sessions.DeleteSessionByTokenHash(ctx, hashSessionToken(tokenString))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func hashSessionToken(tokenString string) string {
	digest := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(digest[:])
}
