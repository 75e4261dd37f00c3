// Package common provides IP address utilities
package common

import (
	"regexp"
)

// Octets are not range checked: report templates are trusted to carry
// dotted quads and anything shaped like one is kept.
var dottedQuadRegex = regexp.MustCompile(`[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`)

// ExtractAllIPv4 refangs text and returns every dotted quad in document order
func ExtractAllIPv4(text string) []string {
	return dottedQuadRegex.FindAllString(Refang(text), -1)
}
