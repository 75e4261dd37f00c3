package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/attachments"
	"github.com/abusix/ioc-parsers/pkg/config"
	"github.com/abusix/ioc-parsers/pkg/mailbox"
)

type AttachmentsCommand struct {
	Input string `short:"i" long:"input" description:"Directory of .eml files, mbox archive or single .eml"`
	Dir   string `short:"d" long:"dir" description:"Directory the attachments are written to"`
	Name  string `short:"n" long:"name" description:"Only save the attachment with this exact file name"`
}

func (c *AttachmentsCommand) Execute(_ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Input != "" {
		conf.Input = c.Input
	}
	if c.Dir != "" {
		conf.AttachmentsDir = c.Dir
	}
	if c.Name != "" {
		conf.Filters.Attachment = c.Name
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if conf.Input == "" {
		return errors.New("no input given (--input or IOC_INPUT)")
	}

	logger := newLogger(conf)
	if err := os.MkdirAll(conf.AttachmentsDir, 0o755); err != nil {
		return errors.Wrap(err, "create attachments directory")
	}

	src, err := mailbox.Open(conf.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	saved, err := runAttachments(conf, src, logger)
	logger.Info("attachments saved", "count", saved, "dir", conf.AttachmentsDir)
	return err
}

// runAttachments saves the attachments of every matching email and returns
// how many files were written
func runAttachments(conf *config.Config, src mailbox.Source, logger *log.Logger) (int, error) {
	filter := mailbox.Filter{Sender: conf.Filters.Sender, Subject: conf.Filters.Subject}
	saved := 0

	for {
		msg, err := src.Next()
		if err == io.EOF {
			return saved, nil
		}
		if err != nil {
			return saved, err
		}

		serialized, err := decodeEmail(msg.Raw)
		if err != nil {
			logger.Warn("could not parse email", "id", msg.ID, "err", err)
			continue
		}
		if !filter.Match(serialized) {
			continue
		}

		subject, _ := common.GetSubject(serialized, false)
		logger.Info("Extracting attachments", "id", msg.ID, "subject", subject, "date", receivedAt(serialized))

		paths, err := attachments.Save(conf.AttachmentsDir, serialized.Attachments(), conf.Filters.Attachment)
		saved += len(paths)
		if err != nil {
			return saved, err
		}
		for _, p := range paths {
			logger.Debug("attachment written", "path", p)
		}
	}
}
