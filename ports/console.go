package ports

import (
	"io"
)

// Console is the read-line / write-line surface every interactive action talks to.
// Implementations block on ReadLine until a full line is available.
type Console interface {
	// ReadLine writes prompt and returns the next input line without its line ending.
	// It returns io.EOF once the input is exhausted.
	ReadLine(prompt string) (string, error)

	// WriteLine writes one formatted line
	WriteLine(format string, args ...interface{})

	// WriteError writes a line describing a failed action
	WriteError(format string, args ...interface{})

	// WriteSuccess writes a line confirming a completed action
	WriteSuccess(format string, args ...interface{})

	// Writer exposes the raw output for tabular renderers
	Writer() io.Writer
}
