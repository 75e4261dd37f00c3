package indicators

import (
	"fmt"
)

// Columns is the fixed export header. Record.Row follows the same order.
var Columns = []string{"IOC", "Owner", "Domain", "MD5", "SHA256", "Notes"}

// Record is a single indicator of compromise extracted from a report
type Record struct {
	Kind   Kind   `json:"kind"`
	IOC    string `json:"ioc"`
	Owner  string `json:"owner,omitempty"`
	Domain string `json:"domain,omitempty"`
	MD5    string `json:"md5,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// NewFileRecord creates a file indicator. The name is kept as written in the report.
func NewFileRecord(name, md5, sha256 string) *Record {
	return &Record{
		Kind:   KindFile,
		IOC:    name,
		MD5:    md5,
		SHA256: sha256,
	}
}

// NewURLRecord creates a URL indicator with its resolved domain
func NewURLRecord(url, domain string) *Record {
	return &Record{
		Kind:   KindURL,
		IOC:    url,
		Domain: domain,
	}
}

// NewIPRecord creates an IP indicator
func NewIPRecord(ip string) *Record {
	return &Record{
		Kind: KindIP,
		IOC:  ip,
	}
}

// Row returns the record's cells in Columns order
func (r *Record) Row() []string {
	return []string{r.IOC, r.Owner, r.Domain, r.MD5, r.SHA256, r.Notes}
}

// Validate checks the record carries every field its kind requires
func (r *Record) Validate() error {
	req := r.Kind.Requirement()
	if req == nil {
		return &RequirementNotMetError{
			RequirementKey: "kind",
			Cause:          fmt.Errorf("record has no known kind (%s)", r.Kind),
		}
	}
	if err := req.Validate(r); err != nil {
		return &RequirementNotMetError{
			RequirementKey: r.Kind.String(),
			Cause:          err,
		}
	}
	return nil
}

func (r *Record) String() string {
	switch r.Kind {
	case KindFile:
		return fmt.Sprintf("file %s md5=%s sha256=%s", r.IOC, r.MD5, r.SHA256)
	case KindURL:
		return fmt.Sprintf("url %s domain=%s", r.IOC, r.Domain)
	default:
		return fmt.Sprintf("%s %s", r.Kind, r.IOC)
	}
}

// RequirementNotMetError is raised when record validation fails
type RequirementNotMetError struct {
	RequirementKey string
	Cause          error
}

func (e *RequirementNotMetError) Error() string {
	if e.Cause != nil {
		return "requirement '" + e.RequirementKey + "' not met: " + e.Cause.Error()
	}
	return "requirement '" + e.RequirementKey + "' not met"
}

func (e *RequirementNotMetError) Unwrap() error {
	return e.Cause
}
