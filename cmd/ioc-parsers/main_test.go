package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/config"
	"github.com/abusix/ioc-parsers/pkg/export"
	"github.com/abusix/ioc-parsers/pkg/mailbox"
)

var samplesDir = filepath.Join("..", "..", "testdata", "cofense")

func openSamples(t *testing.T) mailbox.Source {
	t.Helper()
	src, err := mailbox.OpenDir(samplesDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestRunExtract(t *testing.T) {
	var logs, out bytes.Buffer
	logger := log.New(&logs)

	summary, err := runExtract(config.Default(), openSamples(t), export.NewCSVWriter(&out), logger)
	require.NoError(t, err)
	assert.Equal(t, Summary{Seen: 4, Parsed: 3, Skipped: 1, Records: 7}, summary)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, "payload.js", rows[1][0])
	assert.Equal(t, "hxxps://www[.]payroll-update[.]net:8443/portal/index[.]php", rows[2][0])
	assert.Equal(t, "203[.]0[.]113[.]7", rows[7][0])

	assert.Contains(t, logs.String(), "Extracting IOCs")
	assert.Contains(t, logs.String(), "Cofense PDC Report - Credential Phish")
	assert.Contains(t, logs.String(), "no parser matched")
}

func TestRunExtractFilters(t *testing.T) {
	conf := config.Default()
	conf.Filters.Subject = "Cofense PDC Report - Malware Delivery"

	var out bytes.Buffer
	summary, err := runExtract(conf, openSamples(t), export.NewJSONWriter(&out), log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Summary{Seen: 4, Parsed: 1, Skipped: 3, Records: 2}, summary)
	assert.Contains(t, out.String(), "198[.]51[.]100[.]23")

	conf = config.Default()
	conf.Filters.Sender = "nobody@example.org"
	out.Reset()
	summary, err = runExtract(conf, openSamples(t), export.NewJSONWriter(&out), log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Parsed)
	assert.Equal(t, "[]\n", out.String())
}

func TestRunExtractCountsUnreadableEmails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.eml"), []byte("not an email"), 0o600))

	src, err := mailbox.OpenDir(dir)
	require.NoError(t, err)

	var logs, out bytes.Buffer
	summary, err := runExtract(config.Default(), src, export.NewJSONWriter(&out), log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, Summary{Seen: 1, Failed: 1}, summary)
	assert.Contains(t, logs.String(), "could not parse email")
	assert.Contains(t, logs.String(), "parser error: decode email")
}

func TestExtractMessageUnreadable(t *testing.T) {
	_, _, err := extractMessage(&mailbox.Message{ID: "broken", Raw: []byte("not an email")}, mailbox.Filter{}, log.New(io.Discard))

	var parserErr *common.ParserError
	require.True(t, errors.As(err, &parserErr))
	assert.Equal(t, "decode email", parserErr.Message)
	assert.Error(t, parserErr.Cause)
}

// The heading is followed by a space, so the parser matches the email but
// finds no indicator section to isolate.
const headingWithoutSection = "From: Cofense PDC <phishing.defense@cofense.com>\r\n" +
	"Subject: Cofense PDC Report - Truncated\r\n" +
	"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
	"\r\n" +
	"Indicators of Compromise (IOCs): \r\n" +
	"Associated IP:\r\n" +
	"192.0.2.55\r\n"

func TestRunExtractSkipsMissingSection(t *testing.T) {
	dir := t.TempDir()
	good, err := os.ReadFile(filepath.Join(samplesDir, "report.html.eml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-truncated.eml"), []byte(headingWithoutSection), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-report.eml"), good, 0o600))

	src, err := mailbox.OpenDir(dir)
	require.NoError(t, err)

	var logs, out bytes.Buffer
	summary, err := runExtract(config.Default(), src, export.NewCSVWriter(&out), log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, Summary{Seen: 2, Parsed: 1, Skipped: 1, Records: 2}, summary)
	assert.Contains(t, logs.String(), "skipping email without indicator section")

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "198[.]51[.]100[.]23", rows[2][0])
	assert.NotContains(t, out.String(), "192[.]0[.]2[.]55")
}

func TestRunProcess(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join(samplesDir, "report.plain.eml"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runProcess(bytes.NewReader(raw), &out, log.New(io.Discard)))
	assert.Contains(t, out.String(), `"ioc": "Invoice_0714.zip"`)
	assert.Contains(t, out.String(), `"domain": "bad[.]example[.]com"`)

	err = runProcess(strings.NewReader("From: a@b.c\r\n\r\nhello\r\n"), &out, log.New(io.Discard))
	assert.ErrorContains(t, err, "no parser matched")

	err = runProcess(strings.NewReader("not an email"), &out, log.New(io.Discard))
	var parserErr *common.ParserError
	assert.True(t, errors.As(err, &parserErr))
}

func TestRunAttachments(t *testing.T) {
	conf := config.Default()
	conf.AttachmentsDir = t.TempDir()

	saved, err := runAttachments(conf, openSamples(t), log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	data, err := os.ReadFile(filepath.Join(conf.AttachmentsDir, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello attachment\n", string(data))

	conf.Filters.Attachment = "missing.bin"
	saved, err = runAttachments(conf, openSamples(t), log.New(io.Discard))
	require.NoError(t, err)
	assert.Zero(t, saved)
}

func TestApplyOptions(t *testing.T) {
	conf := config.Default()
	conf.Filters.Subject = "from config"

	applyOptions(conf, Options{Sender: "phishing.defense@cofense.com", LogLevel: "debug"})
	assert.Equal(t, "phishing.defense@cofense.com", conf.Filters.Sender)
	assert.Equal(t, "from config", conf.Filters.Subject)
	assert.Equal(t, log.DebugLevel, conf.Level())
}
