package utils

import "github.com/google/uuid"

// Identifier prefixes.
const (
	GuestIDPrefix      = "GUEST_"
	RegisteredIDPrefix = "REG_"
	TaskIDPrefix       = "task_"
)

// UUIDGenerator produces time-ordered UUIDv7 strings.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, falling back to a random UUIDv4 if the
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewID returns prefix followed by a fresh UUID.
func (g *UUIDGenerator) NewID(prefix string) string {
	return prefix + g.Generate()
}
