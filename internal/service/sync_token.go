package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Sync and cursor tokens are opaque to clients: base64 of
// "<version>:<timestamp>". Version 2 carries microseconds since epoch;
// version 1 is the legacy second-resolution form still echoed back by old
// clients.
const (
	syncTokenVersionLegacy  = "1"
	syncTokenVersionCurrent = "2"
)

// EncodeSyncToken produces a version-2 token for the given microsecond
// timestamp.
func EncodeSyncToken(timestamp int64) string {
	payload := syncTokenVersionCurrent + ":" + strconv.FormatInt(timestamp, 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// DecodeSyncToken extracts the microsecond timestamp from a sync or cursor
// token. Legacy version-1 payloads carry seconds and are upscaled.
// Returns [ErrInvalidSyncToken] for anything that does not decode.
func DecodeSyncToken(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSyncToken, err)
	}

	version, payload, found := strings.Cut(string(decoded), ":")
	if !found {
		return 0, fmt.Errorf("%w: missing version prefix", ErrInvalidSyncToken)
	}

	switch version {
	case syncTokenVersionCurrent:
		timestamp, parseErr := strconv.ParseInt(payload, 10, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidSyncToken, parseErr)
		}
		return timestamp, nil

	case syncTokenVersionLegacy:
		// Legacy tokens may carry fractional seconds.
		seconds, parseErr := strconv.ParseFloat(payload, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidSyncToken, parseErr)
		}
		return int64(seconds * float64(microsecondsInASecond)), nil

	default:
		return 0, fmt.Errorf("%w: unknown version %q", ErrInvalidSyncToken, version)
	}
}
