package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly created server-side records.
// V7 UUIDs are time-ordered, which keeps index growth on the items table
// append-mostly; when V7 generation fails it falls back to a random V4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
