package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
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

// SessionID identifies one interactive analysis session in logs
type SessionID ID

func (id SessionID) String() string { return ID(id).String() }

// NewSessionID creates a fresh session identifier
func NewSessionID() SessionID {
	return SessionID(NewID())
}
