package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates an opaque id for a new record.
func NewID() string {
	return uuid.New().String()
}

// CanonicalID normalizes an id so that ids coming from different sources
// (form values, path params, database rows) compare equal. UUIDs are rendered
// in their standard lowercase hyphenated form; anything else is trimmed and
// lowercased.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return strings.ToLower(id)
}

// SameID reports whether two ids refer to the same record.
func SameID(a, b string) bool {
	return CanonicalID(a) == CanonicalID(b)
}
