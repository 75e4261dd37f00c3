// Package cofense parses Cofense Phishing Defense Center reports into
// indicator records
package cofense

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers/base"
	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/email"
)

const parserName = "cofense"

// Parser turns Cofense PDC report emails into indicator records
type Parser struct {
	base.BaseParser
	logger *log.Logger
}

// NewParser creates a Cofense report parser. A nil logger uses log.Default().
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{
		BaseParser: base.NewBaseParser(parserName),
		logger:     logger.WithPrefix(parserName),
	}
}

// Match reports whether the body carries the IOC section heading
func (p *Parser) Match(serializedEmail *email.SerializedEmail) bool {
	body, err := common.GetBody(serializedEmail, false)
	if err != nil {
		return false
	}
	return strings.Contains(body, strings.TrimSuffix(sectionStartMarker, "\n"))
}

// Parse extracts the records of the email's text body
func (p *Parser) Parse(serializedEmail *email.SerializedEmail) ([]*indicators.Record, error) {
	body, err := common.GetBody(serializedEmail, true)
	if err != nil {
		return nil, err
	}
	return p.ParseBody(body)
}

// ParseBody extracts every indicator of a report body in document order.
// It fails only with *common.MissingSectionError; problems inside a block
// are logged and cost that block's records, never the rest of the report.
func (p *Parser) ParseBody(body string) ([]*indicators.Record, error) {
	section, err := Isolate(body)
	if err != nil {
		return nil, err
	}

	report := common.NewReport()
	for _, s := range Split(section) {
		records, err := s.Extract()
		if err != nil {
			p.logger.Warn("incomplete indicator block", "kind", s.Kind, "header", s.Header, "err", err)
		}
		if err := report.Add(records...); err != nil {
			p.logger.Warn("dropped invalid record", "kind", s.Kind, "err", err)
		}
	}

	p.logger.Debug("report parsed", "records", report.Len(), "by_kind", report.CountByKind())
	return report.Records(), nil
}
