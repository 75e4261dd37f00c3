// Package base provides base parser types and utilities
package base

import (
	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/pkg/email"
)

// Parser is the interface that all parsers must implement
type Parser interface {
	// Match reports whether the parser recognises the email's template
	Match(serializedEmail *email.SerializedEmail) bool
	Parse(serializedEmail *email.SerializedEmail) ([]*indicators.Record, error)
	GetName() string
	GetPriority() int
}

// PriorityVendor is the execution order of sender-specific parsers.
// Lower numbers run first.
const PriorityVendor = 100

// BaseParser provides common functionality for all parsers
type BaseParser struct {
	Name     string
	Priority int
}

// NewBaseParser creates a new base parser with the given name and default vendor priority
func NewBaseParser(name string) BaseParser {
	return BaseParser{
		Name:     name,
		Priority: PriorityVendor,
	}
}

// GetName returns the parser name
func (p *BaseParser) GetName() string {
	return p.Name
}

// GetPriority returns the parser priority (lower numbers run first)
func (p *BaseParser) GetPriority() int {
	return p.Priority
}
