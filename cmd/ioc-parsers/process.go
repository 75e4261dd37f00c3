package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/abusix/ioc-parsers/parsers"
	"github.com/abusix/ioc-parsers/pkg/export"
)

type ProcessCommand struct{}

func (c *ProcessCommand) Execute(_ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	return runProcess(os.Stdin, os.Stdout, newLogger(conf))
}

// runProcess reads one raw email and writes its records as a JSON array
func runProcess(r io.Reader, w io.Writer, logger *log.Logger) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read email")
	}

	serialized, err := decodeEmail(raw)
	if err != nil {
		return err
	}

	records, parserName, err := parsers.ParseEmail(serialized, logger)
	if err != nil {
		return errors.Wrap(err, "process email")
	}
	logger.Debug("email processed", "parser", parserName, "records", len(records))

	return export.NewJSONWriter(w).Write(records)
}
