// Package common provides URL utility functions
package common

import (
	"regexp"
	"strings"
)

var (
	// A 4-5 letter scheme (http, https, hxxp, hxxps, ...) up to the end of the line
	urlCandidateRegex = regexp.MustCompile(`[A-Za-z]{4,5}://.*`)
	urlSchemeRegex    = regexp.MustCompile(`(?i)^[a-z]{4,5}://`)
	urlWWWRegex       = regexp.MustCompile(`(?i)^www(?:\[\.\]|\.)`)
	urlLeadingDot     = regexp.MustCompile(`^(?:\[\.\]|\.)`)
	// Top-level-domain-like label, optional port, then the path
	urlPathRegex = regexp.MustCompile(`(?:\[\.\]|\.)[A-Za-z0-9]{1,5}(?::[0-9]+)?(/.*)`)
)

// ExtractURLCandidates returns every scheme-prefixed URL in text, one per line
// at most, with trailing whitespace removed
func ExtractURLCandidates(text string) []string {
	matches := urlCandidateRegex.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, match := range matches {
		if url := strings.TrimRight(match, " \t\r"); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// ResolveDomain returns the defanged host part of a plain or defanged URL.
// The port, if any, is kept. Hosts that do not end in a short label before
// the path are returned without path stripping.
func ResolveDomain(url string) string {
	host := strings.TrimSpace(url)

	if loc := urlSchemeRegex.FindStringIndex(host); loc != nil {
		host = host[loc[1]:]
		if loc := urlWWWRegex.FindStringIndex(host); loc != nil && hasDot(host[loc[1]:]) {
			host = host[loc[1]:]
		} else if loc := urlLeadingDot.FindStringIndex(host); loc != nil {
			host = host[loc[1]:]
		}
	}

	if loc := urlPathRegex.FindStringSubmatchIndex(host); loc != nil {
		host = host[:loc[2]]
	}

	return Sanitize(host)
}

func hasDot(s string) bool {
	return strings.Contains(s, ".") || strings.Contains(s, defangedDot)
}
