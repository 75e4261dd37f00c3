package common

import "strings"

const defangedDot = "[.]"

// Defang replaces every "." with "[.]". Applying it twice over-escapes, so
// text that may already be defanged goes through Sanitize instead.
func Defang(text string) string {
	return strings.ReplaceAll(text, ".", defangedDot)
}

// Refang replaces every "[.]" with "."
func Refang(text string) string {
	return strings.ReplaceAll(text, defangedDot, ".")
}

// Sanitize defangs text that may be plain, defanged or a mix of both
func Sanitize(text string) string {
	return Defang(Refang(text))
}
