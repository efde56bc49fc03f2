package graph

import "github.com/google/uuid"

// ID is the stable, universally-unique identifier carried by every Node,
// Edge, and Cell. Equality on any of these entities is ID equality.
type ID = uuid.UUID

// NewID mints a fresh random identifier for a newly constructed entity.
func NewID() ID {
	return uuid.New()
}

// ParseID parses a persisted identifier string, as produced by ID.String().
func ParseID(s string) (ID, error) {
	return uuid.Parse(s)
}
