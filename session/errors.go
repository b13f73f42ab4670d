package session

import (
	"errors"
	"fmt"
)

// ParseError is returned when a loaded file cannot be parsed as CSV. The session keeps its
// previous dataset.
type ParseError struct {
	Cause error
}

func (err ParseError) Error() string {
	return fmt.Sprintf("failed to parse CSV: %v", err.Cause)
}

func (err ParseError) Unwrap() error {
	return err.Cause
}

// ValidationError is returned when a command is given invalid input, such as an empty column
// selection or an incomplete chart configuration. The session is left unchanged.
type ValidationError struct {
	Message string
	Cause   error
}

func (err ValidationError) Error() string {
	if err.Cause == nil {
		return err.Message
	}
	return fmt.Sprintf("%s: %v", err.Message, err.Cause)
}

func (err ValidationError) Unwrap() error {
	return err.Cause
}

func newValidationError(cause error, message string) ValidationError {
	return ValidationError{Message: message, Cause: cause}
}

var (
	ErrNoDataset   = ValidationError{Message: "no CSV file has been loaded"}
	ErrNoChartData = errors.New("no data available for the selected configuration")
)
