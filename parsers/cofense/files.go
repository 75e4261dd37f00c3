package cofense

import (
	"errors"
	"regexp"
	"strings"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers/common"
)

const (
	labelFileName = "File Name"
	labelMD5      = "MD5"
	labelSHA256   = "SHA256"
)

var fileFieldRegex = regexp.MustCompile(`(File Name|MD5|SHA256): (.*)`)

// fileState is the position inside a File Name / MD5 / SHA256 entry
type fileState int

const (
	awaitingName fileState = iota
	awaitingMD5
	awaitingSHA256
)

func (s fileState) label() string {
	switch s {
	case awaitingMD5:
		return labelMD5
	case awaitingSHA256:
		return labelSHA256
	default:
		return labelFileName
	}
}

// ExtractFiles decodes "File Name:", "MD5:", "SHA256:" lines into file
// records. A record is emitted only once all three lines have been seen in
// that order; incomplete entries are dropped and returned as
// MalformedTripletErrors next to the records that did complete.
func ExtractFiles(content string) ([]*indicators.Record, error) {
	matches := fileFieldRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, common.NewExtractionMissError(indicators.KindFile)
	}

	var (
		records   []*indicators.Record
		errs      []error
		state     = awaitingName
		name, md5 string
	)

	for _, match := range matches {
		label, value := match[1], strings.TrimSpace(match[2])

		switch {
		case state == awaitingName && label == labelFileName:
			name = value
			state = awaitingMD5
		case state == awaitingMD5 && label == labelMD5:
			md5 = value
			state = awaitingSHA256
		case state == awaitingSHA256 && label == labelSHA256:
			records = append(records, indicators.NewFileRecord(name, md5, value))
			name, md5 = "", ""
			state = awaitingName
		default:
			errs = append(errs, common.NewMalformedTripletError(name, state.label(), label))
			name, md5 = "", ""
			state = awaitingName
			// A new name starts the next entry instead of being lost
			if label == labelFileName {
				name = value
				state = awaitingMD5
			}
		}
	}

	if state != awaitingName {
		errs = append(errs, common.NewMalformedTripletError(name, state.label(), ""))
	}

	return records, errors.Join(errs...)
}
