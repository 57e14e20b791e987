// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "gatehouse/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a VisitorID where a
// DetaineeID is expected.
type (
	VisitorID  uuid.UUID
	DetaineeID uuid.UUID
)

// NewVisitorID generates a fresh random visitor identifier.
func NewVisitorID() VisitorID {
	return VisitorID(uuid.New())
}

// NewDetaineeID generates a fresh random detainee identifier.
func NewDetaineeID() DetaineeID {
	return DetaineeID(uuid.New())
}

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseVisitorID(s string) (VisitorID, error) {
	id, err := parseID(s, "visitor ID")
	return VisitorID(id), err
}

func ParseDetaineeID(s string) (DetaineeID, error) {
	id, err := parseID(s, "detainee ID")
	return DetaineeID(id), err
}

// String methods - for logging and debugging.

func (id VisitorID) String() string  { return uuid.UUID(id).String() }
func (id DetaineeID) String() string { return uuid.UUID(id).String() }

// IsZero checks - used for service-layer validation.

func (id VisitorID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DetaineeID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// parseID is the shared validation logic. The nil UUID is rejected here:
// no record is ever stored under it, so letting it through would only turn
// an input error into a store miss.
func parseID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must be a valid UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be the zero UUID")
	}
	return id, nil
}
