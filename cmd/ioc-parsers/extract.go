package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers"
	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/config"
	"github.com/abusix/ioc-parsers/pkg/email"
	"github.com/abusix/ioc-parsers/pkg/export"
	"github.com/abusix/ioc-parsers/pkg/mailbox"
)

type ExtractCommand struct {
	Input  string `short:"i" long:"input" description:"Directory of .eml files, mbox archive or single .eml"`
	Output string `short:"o" long:"output" description:"Output file, - for stdout"`
	Format string `short:"f" long:"format" description:"csv or json"`
}

func (c *ExtractCommand) Execute(_ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Input != "" {
		conf.Input = c.Input
	}
	if c.Output != "" {
		conf.Output = c.Output
	}
	if c.Format != "" {
		conf.Format = c.Format
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if conf.Input == "" {
		return errors.New("no input given (--input or IOC_INPUT)")
	}

	logger := newLogger(conf)

	src, err := mailbox.Open(conf.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	out, closeOut, err := openOutput(conf.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	w, err := export.New(conf.Format, out)
	if err != nil {
		return err
	}

	summary, err := runExtract(conf, src, w, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, summary)
	return nil
}

// Summary counts what happened to the emails of one batch
type Summary struct {
	Seen    int
	Parsed  int
	Skipped int
	Failed  int
	Records int
}

func (s Summary) String() string {
	return fmt.Sprintf("emails seen: %d, parsed: %d, skipped: %d, failed: %d, records: %d",
		s.Seen, s.Parsed, s.Skipped, s.Failed, s.Records)
}

// runExtract parses every matching email of src and writes the aggregated
// records in one batch. Emails that cannot be read, parsed or recognised are
// logged and counted; only reading the source or writing the output aborts.
func runExtract(conf *config.Config, src mailbox.Source, w export.Writer, logger *log.Logger) (Summary, error) {
	var summary Summary
	var batches [][]*indicators.Record

	filter := mailbox.Filter{Sender: conf.Filters.Sender, Subject: conf.Filters.Subject}

	for {
		msg, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, err
		}
		summary.Seen++

		records, parserName, err := extractMessage(msg, filter, logger)
		if err != nil {
			var ignoreErr *common.IgnoreError
			var missingErr *common.MissingSectionError
			var parserErr *common.ParserError
			switch {
			case errors.As(err, &ignoreErr):
				logger.Info("skipping email", "id", msg.ID, "reason", ignoreErr.Reason)
				summary.Skipped++
			case errors.As(err, &missingErr):
				logger.Warn("skipping email without indicator section", "id", msg.ID, "marker", missingErr.Marker)
				summary.Skipped++
			case errors.As(err, &parserErr):
				logger.Warn("could not parse email", "id", msg.ID, "err", parserErr)
				summary.Failed++
			default:
				logger.Error("parser failed", "id", msg.ID, "parser", parserName, "err", err)
				summary.Failed++
			}
			continue
		}

		logger.Debug("email parsed", "id", msg.ID, "parser", parserName, "records", len(records))
		summary.Parsed++
		batches = append(batches, records)
	}

	records := common.Aggregate(batches...)
	summary.Records = len(records)
	if err := w.Write(records); err != nil {
		return summary, err
	}
	return summary, nil
}

// extractMessage decodes one message and runs the parser registry on it.
// Unreadable mail fails with *common.ParserError, filtered mail with
// *common.IgnoreError.
func extractMessage(msg *mailbox.Message, filter mailbox.Filter, logger *log.Logger) ([]*indicators.Record, string, error) {
	serialized, err := decodeEmail(msg.Raw)
	if err != nil {
		return nil, "", err
	}
	if !filter.Match(serialized) {
		return nil, "", common.NewIgnoreError("filtered out by sender or subject")
	}

	subject, _ := common.GetSubject(serialized, false)
	logger.Info("Extracting IOCs", "id", msg.ID, "subject", subject, "date", receivedAt(serialized))

	return parsers.ParseEmail(serialized, logger)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create output")
	}
	return f, func() { _ = f.Close() }, nil
}

// receivedAt formats the Date header for log lines
func receivedAt(serialized *email.SerializedEmail) string {
	if date := common.GetDate(serialized); date != nil {
		return date.Format(time.RFC3339)
	}
	return "unknown"
}
