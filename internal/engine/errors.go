package engine

import (
	"fmt"
	"strings"
)

// InvalidTransportError is returned for a transport ID missing from the
// rate table.
type InvalidTransportError struct {
	Transport string
}

func (e *InvalidTransportError) Error() string {
	if e.Transport == "" {
		return "invalid transport: transport not specified"
	}
	return fmt.Sprintf("invalid transport: %q is not a known transport mode", e.Transport)
}

// InvalidDistanceError is returned for a distance that is not a finite
// positive number.
type InvalidDistanceError struct {
	Distance float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("invalid distance: %v (must be a finite number greater than 0)", e.Distance)
}

// InvalidInputError is returned for a passenger count or frequency below 1.
type InvalidInputError struct {
	Field string
	Value int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %d (must be at least 1)", e.Field, e.Value)
}

// FieldError is one failed check in a ValidationError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failed field of an input.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid calculation input: " + strings.Join(parts, "; ")
}

// Fields returns the names of the failed fields in check order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}
