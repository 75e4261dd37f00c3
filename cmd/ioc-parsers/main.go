// Command ioc-parsers extracts indicators of compromise from Cofense
// Phishing Defense Center reports
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/config"
	"github.com/abusix/ioc-parsers/pkg/email"
)

// Options are shared by every command
type Options struct {
	Config   string `short:"c" long:"config" description:"YAML configuration file"`
	EnvFile  string `long:"env-file" description:"Env file with IOC_* variables (default .env)"`
	Sender   string `long:"sender" description:"Only process emails from this address"`
	Subject  string `long:"subject" description:"Only process emails with exactly this subject"`
	LogLevel string `long:"log-level" description:"debug, info, warn or error"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "ioc-parsers"
	parser.LongDescription = "Extract file, URL and IP indicators from Cofense phishing reports"

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"extract", "Extract IOCs from a mailbox", "Read .eml files or an mbox archive and export every indicator found", &ExtractCommand{}},
		{"process", "Extract IOCs from one email on stdin", "Read one raw email from stdin and write its indicators as JSON to stdout", &ProcessCommand{}},
		{"attachments", "Save attachments of matching emails", "Write the attachments of every matching email into a directory", &AttachmentsCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			log.Fatal("register command", "command", c.name, "err", err)
		}
	}

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// loadConfig merges the config file, env and the global flags
func loadConfig() (*config.Config, error) {
	conf, err := config.Load(opts.Config, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	applyOptions(conf, opts)
	return conf, nil
}

func applyOptions(conf *config.Config, o Options) {
	if o.Sender != "" {
		conf.Filters.Sender = o.Sender
	}
	if o.Subject != "" {
		conf.Filters.Subject = o.Subject
	}
	if o.LogLevel != "" {
		conf.LogLevel = o.LogLevel
	}
}

func newLogger(conf *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           conf.Level(),
	})
}

// decodeEmail parses raw RFC 5322 bytes, reporting failures as *common.ParserError
func decodeEmail(raw []byte) (*email.SerializedEmail, error) {
	serialized, err := email.Parse(raw)
	if err != nil {
		return nil, common.WrapParserError(err, "decode email")
	}
	return serialized, nil
}
