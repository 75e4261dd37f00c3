package indicators

import "fmt"

// Requirement is an interface for record validation requirements
type Requirement interface {
	Validate(record *Record) error
}

// AndRequirement validates that all sub-requirements are met
type AndRequirement struct {
	Requirements []interface{}
}

// NewAndRequirement creates a new AND requirement
func NewAndRequirement(requirements []interface{}) *AndRequirement {
	return &AndRequirement{
		Requirements: requirements,
	}
}

// Validate checks that all requirements are met
func (a *AndRequirement) Validate(record *Record) error {
	for i, req := range a.Requirements {
		if fieldName, ok := req.(string); ok {
			if !hasNonEmptyField(record, fieldName) {
				return fmt.Errorf("requirement %d: field '%s' is empty or missing", i, fieldName)
			}
		} else if subReq, ok := req.(Requirement); ok {
			if err := subReq.Validate(record); err != nil {
				return fmt.Errorf("requirement %d: %w", i, err)
			}
		} else {
			return fmt.Errorf("requirement %d: invalid requirement type", i)
		}
	}
	return nil
}

// hasNonEmptyField checks if a record has a non-empty field
func hasNonEmptyField(record *Record, fieldName string) bool {
	switch fieldName {
	case "ioc":
		return record.IOC != ""
	case "owner":
		return record.Owner != ""
	case "domain":
		return record.Domain != ""
	case "md5":
		return record.MD5 != ""
	case "sha256":
		return record.SHA256 != ""
	case "notes":
		return record.Notes != ""
	default:
		return false
	}
}
