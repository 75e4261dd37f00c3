// Package indicators provides the indicator record model shared by parsers and exporters
package indicators

import (
	"fmt"
	"strings"
)

// Kind tags a record as one of the indicator categories a report can carry
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindURL
	KindIP
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindFile:    "file",
	KindURL:     "url",
	KindIP:      "ip",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindFromString parses the name produced by String
func KindFromString(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown indicator kind: %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := KindFromString(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// requirementsByKind lists the fields a record of each kind must carry
var requirementsByKind = map[Kind]Requirement{
	KindFile: NewAndRequirement([]interface{}{"ioc", "md5", "sha256"}),
	KindURL:  NewAndRequirement([]interface{}{"ioc", "domain"}),
	KindIP:   NewAndRequirement([]interface{}{"ioc"}),
}

// Requirement returns the field requirement of the kind, or nil for KindUnknown
func (k Kind) Requirement() Requirement {
	return requirementsByKind[k]
}
