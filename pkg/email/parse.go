package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Parse parses a raw email into a SerializedEmail struct
func Parse(rawEmail []byte) (*SerializedEmail, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(rawEmail))
	if err != nil {
		return nil, err
	}

	serialized := &SerializedEmail{
		Headers: lowerHeaders(msg.Header),
		Parts:   []EmailPart{},
	}

	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
		params = make(map[string]string)
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary != "" {
			parts, err := parseMultipart(msg.Body, boundary)
			if err == nil {
				serialized.Parts = parts
			}
		}
	} else {
		body, err := io.ReadAll(msg.Body)
		if err == nil {
			decoded := decodeBody(body, msg.Header.Get("Content-Transfer-Encoding"))
			part := EmailPart{
				ContentType: mediaType,
				Headers:     serialized.Headers,
				Body:        decodeCharset(decoded, mediaType, params["charset"]),
			}
			serialized.Parts = []EmailPart{part}
		}
	}

	serialized.Body = serialized.TextBody()

	return serialized, nil
}

func lowerHeaders(header map[string][]string) map[string][]string {
	headers := make(map[string][]string, len(header))
	for key, values := range header {
		headers[strings.ToLower(key)] = values
	}
	return headers
}

func parseMultipart(body io.Reader, boundary string) ([]EmailPart, error) {
	var parts []EmailPart
	mr := multipart.NewReader(body, boundary)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parts, err
		}

		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "text/plain"
		}

		mediaType, params, _ := mime.ParseMediaType(contentType)

		// NextPart already decodes quoted-printable parts and removes their
		// Content-Transfer-Encoding header.
		partBody, err := io.ReadAll(part)
		if err != nil {
			continue
		}

		headers := lowerHeaders(part.Header)
		decodedBody := decodeBody(partBody, part.Header.Get("Content-Transfer-Encoding"))

		emailPart := EmailPart{
			ContentType: mediaType,
			Headers:     headers,
			Body:        decodeCharset(decodedBody, mediaType, params["charset"]),
		}

		if strings.HasPrefix(mediaType, "multipart/") {
			if nestedBoundary := params["boundary"]; nestedBoundary != "" {
				nestedParts, err := parseMultipart(bytes.NewReader(decodedBody), nestedBoundary)
				if err == nil {
					emailPart.Parts = nestedParts
				}
			}
		}

		parts = append(parts, emailPart)
	}

	return parts, nil
}

func decodeBody(body []byte, encoding string) []byte {
	encoding = strings.ToLower(strings.TrimSpace(encoding))

	switch encoding {
	case "base64":
		cleaned := bytes.Map(func(r rune) rune {
			if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, body)
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(cleaned)))
		n, err := base64.StdEncoding.Decode(decoded, cleaned)
		if err == nil {
			return decoded[:n]
		}
	case "quoted-printable":
		reader := quotedprintable.NewReader(bytes.NewReader(body))
		decoded, err := io.ReadAll(reader)
		if err == nil {
			return decoded
		}
	}

	return body
}

// decodeCharset converts text parts to UTF-8. Binary parts and unknown
// charsets are returned untouched.
func decodeCharset(body []byte, mediaType, charset string) []byte {
	if !strings.HasPrefix(mediaType, "text/") {
		return body
	}
	charset = strings.ToLower(strings.TrimSpace(charset))
	if charset == "" || charset == "utf-8" || charset == "us-ascii" {
		return body
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return body
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
