package app

import (
	"goexplore/domain/core"
	"goexplore/domain/dataset"
)

// Session is the state one interactive run carries between menu actions.
// The table is mutated in place by the missing-data actions.
type Session struct {
	ID    core.SessionID
	Path  string
	Table *dataset.Table
}

// NewSession starts a session over a loaded table
func NewSession(path string, table *dataset.Table) *Session {
	return &Session{
		ID:    core.NewSessionID(),
		Path:  path,
		Table: table,
	}
}
