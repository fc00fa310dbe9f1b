// Package utils holds small helpers shared by the service layer.
package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for accounts and saved items.
// IDs are UUID v7 so they sort by creation time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate falls back to a random v4 UUID if the v7 clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
