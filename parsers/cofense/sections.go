package cofense

import (
	"regexp"
	"strings"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers/common"
)

type extractFunc func(content string) ([]*indicators.Record, error)

// category binds a block header of the report template to its extractor.
// Supporting a new indicator block is one indicators.Kind plus one entry here.
type category struct {
	kind    indicators.Kind
	header  string
	extract extractFunc
}

var (
	categories = []category{
		{kind: indicators.KindFile, header: "Malicious File(s):", extract: ExtractFiles},
		{kind: indicators.KindURL, header: "Malicious URL:", extract: ExtractURLs},
		{kind: indicators.KindIP, header: "Associated IP:", extract: ExtractIPs},
	}

	headerRegex = compileHeaders(categories)
)

func compileHeaders(categories []category) *regexp.Regexp {
	alternatives := make([]string, 0, len(categories))
	for _, c := range categories {
		alternatives = append(alternatives, regexp.QuoteMeta(c.header))
	}
	return regexp.MustCompile(strings.Join(alternatives, "|"))
}

func categoryOf(kind indicators.Kind) (category, bool) {
	for _, c := range categories {
		if c.kind == kind {
			return c, true
		}
	}
	return category{}, false
}

func kindOfHeader(header string) indicators.Kind {
	for _, c := range categories {
		if c.header == header {
			return c.kind
		}
	}
	return indicators.KindUnknown
}

// Section is one block of the indicator section: a category header and the
// text that follows it up to the next header
type Section struct {
	Kind    indicators.Kind
	Header  string
	Content string
}

// Split cuts an isolated indicator section into blocks in document order.
// Non-blank text before the first header becomes a KindUnknown block.
func Split(section string) []Section {
	locs := headerRegex.FindAllStringIndex(section, -1)

	leadingEnd := len(section)
	if len(locs) > 0 {
		leadingEnd = locs[0][0]
	}

	var sections []Section
	if leading := section[:leadingEnd]; strings.TrimSpace(leading) != "" {
		sections = append(sections, Section{Kind: indicators.KindUnknown, Content: leading})
	}

	for i, loc := range locs {
		end := len(section)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		header := section[loc[0]:loc[1]]
		sections = append(sections, Section{
			Kind:    kindOfHeader(header),
			Header:  header,
			Content: section[loc[1]:end],
		})
	}

	return sections
}

// Extract runs the block's category extractor
func (s Section) Extract() ([]*indicators.Record, error) {
	c, ok := categoryOf(s.Kind)
	if !ok {
		return nil, common.NewNoIndicatorsFoundError(s.Header)
	}
	return c.extract(s.Content)
}
