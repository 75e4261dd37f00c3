package cofense

import (
	"strings"

	"github.com/abusix/ioc-parsers/parsers/common"
)

const (
	sectionStartMarker = "Indicators of Compromise (IOCs):\n"
	sectionEndMarker   = "\nCofense\nPhishing Defense Center\nphishing.defense@cofense.com"
)

// Isolate normalizes line endings and returns the indicator section of a
// report body: the text after the IOC heading and before the PDC footer.
// A missing footer keeps everything up to the end of the body.
func Isolate(rawBody string) (string, error) {
	body := common.CollapseBlankLines(common.RemoveCarriageReturn(rawBody))

	section, found := common.TextAfterMarker(body, sectionStartMarker)
	if !found {
		return "", common.NewMissingSectionError(strings.TrimSuffix(sectionStartMarker, "\n"))
	}

	return common.TextBeforeMarker(section, sectionEndMarker), nil
}
