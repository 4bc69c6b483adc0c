package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Startup errors
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedTable    = errors.New("malformed table")

	// Action errors - recovered by the menu loop
	ErrInvalidColumn     = errors.New("invalid column")
	ErrInvalidMenuChoice = errors.New("invalid menu choice")
	ErrMissingArgument   = errors.New("missing argument")
	ErrUnsupportedChart  = errors.New("unsupported chart type")
	ErrNonNumericColumn  = errors.New("column is not numeric")
	ErrInsufficientData  = errors.New("insufficient data for analysis")
	ErrInvalidMethod     = errors.New("invalid fill method")
)

// Error constructors with context
func NewFileNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func NewUnsupportedFormatError(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func NewInvalidColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidColumn, name)
}

func NewMissingArgumentError(argument, chart string) error {
	return fmt.Errorf("%w: %s must be specified for %s plots", ErrMissingArgument, argument, chart)
}

func NewUnsupportedChartError(kind string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedChart, kind)
}

func NewNonNumericColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrNonNumericColumn, name)
}

func NewInsufficientDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, reason)
}

// IsRecoverable reports whether err aborts only the current menu action.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidColumn) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrUnsupportedChart) ||
		errors.Is(err, ErrNonNumericColumn) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInvalidMethod)
}

// IsStartupError reports whether err should end the session before the menu loop.
func IsStartupError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformedTable)
}
