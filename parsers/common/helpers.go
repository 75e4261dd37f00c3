// Package common provides helper functions for parsers
package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/abusix/ioc-parsers/pkg/email"
)

var blankLinesRegex = regexp.MustCompile(`\n{2,}`)

// GetBody returns the email body as a string, falling back to the text
// parts when Body is unset. With throws, an empty body is an error.
func GetBody(serializedEmail *email.SerializedEmail, throws bool) (string, error) {
	var body string
	switch b := serializedEmail.Body.(type) {
	case nil:
		body = serializedEmail.TextBody()
	case string:
		body = b
	case []byte:
		body = string(b)
	default:
		if throws {
			return "", fmt.Errorf("unexpected body type: %T", b)
		}
		return "", nil
	}

	if body == "" && throws {
		return "", fmt.Errorf("email body is empty")
	}
	return body, nil
}

// GetSubject returns the email subject
func GetSubject(serializedEmail *email.SerializedEmail, throws bool) (string, error) {
	if serializedEmail.Headers == nil {
		if throws {
			return "", fmt.Errorf("email headers are empty")
		}
		return "", nil
	}

	subject, ok := serializedEmail.Headers["subject"]
	if !ok || len(subject) == 0 {
		if throws {
			return "", fmt.Errorf("subject header not found")
		}
		return "", nil
	}

	return subject[0], nil
}

// GetFrom returns the email From address
func GetFrom(serializedEmail *email.SerializedEmail, throws bool) (string, error) {
	if serializedEmail.Headers == nil {
		if throws {
			return "", fmt.Errorf("email headers are empty")
		}
		return "", nil
	}

	from, ok := serializedEmail.Headers["from"]
	if !ok || len(from) == 0 {
		if throws {
			return "", fmt.Errorf("from header not found")
		}
		return "", nil
	}

	// Extract email address from "Name <email@example.com>" format
	fromAddr := from[0]
	if startIdx := strings.Index(fromAddr, "<"); startIdx != -1 {
		if endIdx := strings.Index(fromAddr[startIdx:], ">"); endIdx != -1 {
			return strings.ToLower(strings.TrimSpace(fromAddr[startIdx+1 : startIdx+endIdx])), nil
		}
	}

	return strings.ToLower(strings.TrimSpace(fromAddr)), nil
}

// GetDate returns the parsed Date header, or nil
func GetDate(serializedEmail *email.SerializedEmail) *time.Time {
	if dateHeaders, ok := serializedEmail.Headers["date"]; ok && len(dateHeaders) > 0 {
		return email.ParseDate(dateHeaders[0])
	}
	return nil
}

// RemoveCarriageReturn removes \r characters from a string
func RemoveCarriageReturn(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}

// CollapseBlankLines replaces every run of consecutive newlines with a single one
func CollapseBlankLines(s string) string {
	return blankLinesRegex.ReplaceAllString(s, "\n")
}

// TextAfterMarker returns the text between the first occurrence of marker and
// the next occurrence of the same marker (or the end of text).
func TextAfterMarker(text, marker string) (string, bool) {
	_, after, found := strings.Cut(text, marker)
	if !found {
		return "", false
	}
	if next := strings.Index(after, marker); next != -1 {
		after = after[:next]
	}
	return after, true
}

// TextBeforeMarker returns the text preceding the first occurrence of marker,
// or the whole text when marker is absent
func TextBeforeMarker(text, marker string) string {
	before, _, _ := strings.Cut(text, marker)
	return before
}
