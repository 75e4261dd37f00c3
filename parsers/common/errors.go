// Package common provides common parser utilities and error types
package common

import (
	"fmt"

	"github.com/abusix/ioc-parsers/indicators"
)

// ParserError represents input that could not be read as an email
type ParserError struct {
	Message string
	Cause   error
}

func (e *ParserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parser error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parser error: %s", e.Message)
}

func (e *ParserError) Unwrap() error {
	return e.Cause
}

// WrapParserError creates a ParserError caused by err
func WrapParserError(err error, message string) *ParserError {
	return &ParserError{Message: message, Cause: err}
}

// IgnoreError indicates that an email should be ignored (not processed)
type IgnoreError struct {
	Reason string
}

func (e *IgnoreError) Error() string {
	return fmt.Sprintf("email ignored: %s", e.Reason)
}

// NewIgnoreError creates a new IgnoreError
func NewIgnoreError(reason string) *IgnoreError {
	return &IgnoreError{Reason: reason}
}

// MissingSectionError indicates the report has no indicator section.
// Callers skip the email and keep going with the batch.
type MissingSectionError struct {
	Marker string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("indicator section not found: missing %q", e.Marker)
}

// NewMissingSectionError creates a new MissingSectionError
func NewMissingSectionError(marker string) *MissingSectionError {
	return &MissingSectionError{Marker: marker}
}

// NoIndicatorsFoundError indicates a block whose header is not a known category
type NoIndicatorsFoundError struct {
	Header string
}

func (e *NoIndicatorsFoundError) Error() string {
	if e.Header == "" {
		return "no indicators found: block has no category header"
	}
	return fmt.Sprintf("no indicators found under %q", e.Header)
}

// NewNoIndicatorsFoundError creates a new NoIndicatorsFoundError
func NewNoIndicatorsFoundError(header string) *NoIndicatorsFoundError {
	return &NoIndicatorsFoundError{Header: header}
}

// ExtractionMissError indicates a category block that yielded no matches
type ExtractionMissError struct {
	Kind indicators.Kind
}

func (e *ExtractionMissError) Error() string {
	return fmt.Sprintf("no %s indicators matched in block", e.Kind)
}

// NewExtractionMissError creates a new ExtractionMissError
func NewExtractionMissError(kind indicators.Kind) *ExtractionMissError {
	return &ExtractionMissError{Kind: kind}
}

// MalformedTripletError indicates a file entry that was dropped because its
// File Name / MD5 / SHA256 lines were incomplete or out of order.
type MalformedTripletError struct {
	Name     string
	Expected string
	Got      string
}

func (e *MalformedTripletError) Error() string {
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	if e.Got == "" {
		return fmt.Sprintf("incomplete file entry %s: block ended before %s", name, e.Expected)
	}
	return fmt.Sprintf("incomplete file entry %s: expected %s, got %s", name, e.Expected, e.Got)
}

// NewMalformedTripletError creates a new MalformedTripletError
func NewMalformedTripletError(name, expected, got string) *MalformedTripletError {
	return &MalformedTripletError{Name: name, Expected: expected, Got: got}
}
