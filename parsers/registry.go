package parsers

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers/base"
	"github.com/abusix/ioc-parsers/parsers/cofense"
	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/email"
)

// ParserWithPriority wraps a parser with its execution priority
type ParserWithPriority struct {
	Parser   base.Parser
	Priority int
}

// AllParsers returns every registered parser sorted by priority
func AllParsers(logger *log.Logger) []ParserWithPriority {
	parsers := []ParserWithPriority{
		{Parser: cofense.NewParser(logger)},
	}

	for i := range parsers {
		parsers[i].Priority = parsers[i].Parser.GetPriority()
	}

	sort.SliceStable(parsers, func(i, j int) bool {
		return parsers[i].Priority < parsers[j].Priority
	})

	return parsers
}

// ParseEmail runs the first parser, in priority order, that recognises the
// email. It returns an *common.IgnoreError when no parser does.
func ParseEmail(serializedEmail *email.SerializedEmail, logger *log.Logger) ([]*indicators.Record, string, error) {
	for _, pw := range AllParsers(logger) {
		if !pw.Parser.Match(serializedEmail) {
			continue
		}
		records, err := pw.Parser.Parse(serializedEmail)
		return records, pw.Parser.GetName(), err
	}

	return nil, "", common.NewIgnoreError("no parser matched the email")
}
