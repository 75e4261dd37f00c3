// Package email provides email parsing and serialization types
package email

import (
	"mime"
	"strings"
	"time"
)

// SerializedEmail represents a fully parsed email message
type SerializedEmail struct {
	Identifier string              `json:"identifier"`
	Headers    map[string][]string `json:"headers"`
	Body       interface{}         `json:"body"`
	Parts      []EmailPart         `json:"parts"`
}

// EmailPart represents a MIME part of an email
type EmailPart struct {
	Body        []byte              `json:"body"`
	Headers     map[string][]string `json:"headers,omitempty"`
	ContentType string              `json:"content_type,omitempty"`
	Parts       []EmailPart         `json:"parts,omitempty"` // Nested parts for multipart messages
}

// Attachment is a named part of an email
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TextBody returns the first text/plain part, or the first text/html part
// rendered as text when the message has no plain alternative.
func (s *SerializedEmail) TextBody() string {
	if part := findPart(s.Parts, "text/plain"); part != nil {
		return string(part.Body)
	}
	if part := findPart(s.Parts, "text/html"); part != nil {
		text, err := HTMLToText(string(part.Body))
		if err == nil {
			return text
		}
		return string(part.Body)
	}
	return ""
}

// Attachments returns every part that carries a file name, depth first
func (s *SerializedEmail) Attachments() []Attachment {
	var attachments []Attachment
	walkParts(s.Parts, func(part *EmailPart) {
		if name := part.FileName(); name != "" {
			attachments = append(attachments, Attachment{
				FileName:    name,
				ContentType: part.ContentType,
				Data:        part.Body,
			})
		}
	})
	return attachments
}

// FileName returns the part's file name from Content-Disposition, falling
// back to the Content-Type name parameter.
func (p *EmailPart) FileName() string {
	if disposition := firstHeader(p.Headers, "content-disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return decodeWord(params["filename"])
		}
	}
	if contentType := firstHeader(p.Headers, "content-type"); contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil && params["name"] != "" {
			return decodeWord(params["name"])
		}
	}
	return ""
}

func findPart(parts []EmailPart, mediaType string) *EmailPart {
	var found *EmailPart
	walkParts(parts, func(part *EmailPart) {
		if found == nil && part.ContentType == mediaType && part.FileName() == "" {
			found = part
		}
	})
	return found
}

func walkParts(parts []EmailPart, fn func(*EmailPart)) {
	for i := range parts {
		fn(&parts[i])
		walkParts(parts[i].Parts, fn)
	}
}

func firstHeader(headers map[string][]string, key string) string {
	if values, ok := headers[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func decodeWord(s string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}

// ParseDate parses an RFC 5322 date string from email headers
// Common formats: "Mon, 02 Jan 2006 15:04:05 -0700"
func ParseDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	formats := []string{
		time.RFC1123Z,                           // "Mon, 02 Jan 2006 15:04:05 -0700"
		time.RFC1123,                            // "Mon, 02 Jan 2006 15:04:05 MST"
		"Mon, 2 Jan 2006 15:04:05 -0700",        // Single digit day
		"Mon, 2 Jan 2006 15:04:05 MST",          // Single digit day with zone name
		"2 Jan 2006 15:04:05 -0700",             // No day of week
		"2 Jan 2006 15:04:05 MST",               // No day of week with zone name
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)", // With zone name in parens
		"Mon, 2 Jan 2006 15:04 -0700",           // No seconds
		"2 Jan 2006 15:04 -0700",                // No day of week, no seconds
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
