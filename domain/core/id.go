package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 generation fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	PopulationID ID
	RunID        ID
)

// String conversions for domain IDs
func (id PopulationID) String() string { return ID(id).String() }
func (id RunID) String() string        { return ID(id).String() }

// IsEmpty reports whether the population reference is unset
func (id PopulationID) IsEmpty() bool { return id == "" }

// NewPopulationID creates a fresh population identifier
func NewPopulationID() PopulationID { return PopulationID(NewID()) }

// NewRunID creates a fresh run identifier
func NewRunID() RunID { return RunID(NewID()) }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", NewInvalidParameterError("runID", nil, "cannot be empty")
	}
	return RunID(s), nil
}
