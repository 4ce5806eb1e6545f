package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
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

// JobID identifies one analysis run and keys every persisted artifact
type JobID ID

// NewJobID creates a new time-ordered job identifier
func NewJobID() JobID {
	return JobID(NewID())
}

// String returns the string representation
func (id JobID) String() string { return ID(id).String() }

// IsEmpty checks if the job ID is empty
func (id JobID) IsEmpty() bool { return ID(id).IsEmpty() }

// ParseJobID parses a string into JobID
func ParseJobID(s string) (JobID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("job ID cannot be empty")
	}
	return JobID(s), nil
}
