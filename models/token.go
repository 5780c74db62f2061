package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with the claims the sync surface needs.
//
// It embeds [jwt.Token] for low-level signing and parsing and
// [jwt.RegisteredClaims] for the standard claim set. SignedString holds the
// compact serialized form ready for the Authorization header.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// ReadOnly mirrors the "read_only" claim: when set, the session may
	// retrieve items but every submitted item hash is rejected.
	ReadOnly bool `json:"read_only"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserUUID is the owner identifier extracted from the "sub" claim,
	// cached to avoid repeated claim lookups.
	UserUUID string `json:"-"`
}

// GetUserUUID extracts the user identifier from the token's "sub" claim.
func (t *Token) GetUserUUID() (string, error) {
	userUUID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting user uuid from token: %w", err)
	}

	return userUUID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
