package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/pkg/email"
)

func TestDefangRefang(t *testing.T) {
	inputs := []string{
		"",
		"no dots",
		"1.2.3.4",
		"bad.example.com",
		"https://bad.example.com/a.php?x=1.2",
		"...",
	}

	for _, in := range inputs {
		defanged := Defang(in)
		assert.NotContains(t, Refang(defanged), defangedDot, "input %q", in)
		assert.Equal(t, in, Refang(defanged), "refang(defang(x)) must restore %q", in)
	}

	assert.Equal(t, "1[.]2[.]3[.]4", Defang("1.2.3.4"))
	assert.Equal(t, "1.2.3.4", Refang("1[.]2[.]3[.]4"))
	assert.Equal(t, "a[[.]]b", Defang(Defang("a.b")), "defang is not idempotent")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "evil[.]test", Sanitize("evil[.]test"))
	assert.Equal(t, "evil[.]test", Sanitize("evil.test"))
	assert.Equal(t, "a[.]b[.]c", Sanitize("a.b[.]c"))
	assert.Equal(t, Sanitize("x.y"), Sanitize(Sanitize("x.y")))
}

func TestResolveDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://bad.example.com/login", "bad[.]example[.]com"},
		{"hxxp://evil[.]test", "evil[.]test"},
		{"hxxps://www[.]payroll-update[.]net:8443/portal/index.php", "payroll-update[.]net:8443"},
		{"http://www.example.org/", "example[.]org"},
		{"https://www.com/path", "www[.]com"},
		{"http://203.0.113.9/drop/a.exe", "203[.]0[.]113[.]9"},
		{"https://a.b.co.uk/x/y", "a[.]b[.]co[.]uk"},
		{"HTTPS://Upper.Example.COM/Path", "Upper[.]Example[.]COM"},
		{"http://intranet:8080/path", "intranet:8080/path"},
		{"hxxp://[.]dotted[.]test/x", "dotted[.]test"},
		{"https://long.example/x", "long[.]example/x"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDomain(tt.url))
		})
	}
}

func TestExtractURLCandidates(t *testing.T) {
	text := "Malicious links\nhttps://bad.example.com/login  \nsee: hxxp://evil[.]test\nftp is not matched ftp://x\nxhttps://prefixed.example\n"

	assert.Equal(t, []string{
		"https://bad.example.com/login",
		"hxxp://evil[.]test",
		"https://prefixed.example",
	}, ExtractURLCandidates(text))

	assert.Empty(t, ExtractURLCandidates("nothing to see"))
}

func TestExtractAllIPv4(t *testing.T) {
	assert.Equal(t, []string{"1.2.3.4", "5.6.7.8"}, ExtractAllIPv4("1.2.3.4 and 5.6.7.8[.]"))
	assert.Equal(t, []string{"999.1.1.1"}, ExtractAllIPv4("999.1.1.1"), "octets are not range checked")
	assert.Equal(t, []string{"203.0.113.7"}, ExtractAllIPv4("203.0.113[.]7"))
	assert.Empty(t, ExtractAllIPv4("1.2.3"))
}

func TestMarkers(t *testing.T) {
	after, ok := TextAfterMarker("a START b START c", "START")
	require.True(t, ok)
	assert.Equal(t, " b ", after)

	_, ok = TextAfterMarker("abc", "START")
	assert.False(t, ok)

	assert.Equal(t, "head", TextBeforeMarker("head\nEND tail", "\nEND"))
	assert.Equal(t, "no end", TextBeforeMarker("no end", "\nEND"))

	assert.Equal(t, "a\nb\nc", CollapseBlankLines(RemoveCarriageReturn("a\r\n\r\n\r\nb\r\nc")))
}

func TestEmailHeaderHelpers(t *testing.T) {
	serialized := &email.SerializedEmail{
		Headers: map[string][]string{
			"subject": {"Cofense PDC Report"},
			"from":    {"Cofense PDC <Phishing.Defense@Cofense.com>"},
			"date":    {"Tue, 14 Jul 2026 09:12:44 +0000"},
		},
		Body: "body text",
	}

	subject, err := GetSubject(serialized, true)
	require.NoError(t, err)
	assert.Equal(t, "Cofense PDC Report", subject)

	from, err := GetFrom(serialized, true)
	require.NoError(t, err)
	assert.Equal(t, "phishing.defense@cofense.com", from)

	body, err := GetBody(serialized, true)
	require.NoError(t, err)
	assert.Equal(t, "body text", body)

	require.NotNil(t, GetDate(serialized))

	_, err = GetBody(&email.SerializedEmail{}, true)
	assert.Error(t, err)
	_, err = GetBody(&email.SerializedEmail{Body: 42}, true)
	assert.Error(t, err)
	_, err = GetSubject(&email.SerializedEmail{}, true)
	assert.Error(t, err)
}

func TestGetBodyEmptyParsedMessage(t *testing.T) {
	raw := "From: a@example.org\r\nContent-Type: multipart/mixed; boundary=b\r\n\r\n" +
		"--b\r\nContent-Type: application/octet-stream\r\nContent-Disposition: attachment; filename=\"x.bin\"\r\n\r\nxyz\r\n--b--\r\n"
	serialized, err := email.Parse([]byte(raw))
	require.NoError(t, err)

	_, err = GetBody(serialized, true)
	assert.EqualError(t, err, "email body is empty")

	body, err := GetBody(serialized, false)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestReportAddDropsIncompleteRecords(t *testing.T) {
	report := NewReport()

	err := report.Add(
		indicators.NewFileRecord("a.exe", "m", "s"),
		indicators.NewFileRecord("b.exe", "m", ""),
		nil,
		indicators.NewIPRecord("1[.]2[.]3[.]4"),
	)

	var notMet *indicators.RequirementNotMetError
	assert.True(t, errors.As(err, &notMet))
	require.Equal(t, 2, report.Len())
	assert.Equal(t, "a.exe", report.Records()[0].IOC)
	assert.Equal(t, map[indicators.Kind]int{indicators.KindFile: 1, indicators.KindIP: 1}, report.CountByKind())
}

func TestAggregatePreservesOrder(t *testing.T) {
	first := []*indicators.Record{indicators.NewIPRecord("a"), indicators.NewIPRecord("b")}
	second := []*indicators.Record{indicators.NewIPRecord("a")}

	all := Aggregate(first, nil, second)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "a"}, []string{all[0].IOC, all[1].IOC, all[2].IOC})
	assert.Empty(t, Aggregate())
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, NewMissingSectionError("X").Error(), `"X"`)
	assert.Contains(t, NewNoIndicatorsFoundError("").Error(), "no category header")
	assert.Contains(t, NewExtractionMissError(indicators.KindURL).Error(), "url")
	assert.Contains(t, NewMalformedTripletError("a.exe", "SHA256", "").Error(), "block ended before SHA256")
	assert.Contains(t, NewMalformedTripletError("", "MD5", "SHA256").Error(), "<unnamed>")

	cause := errors.New("malformed MIME header line")
	parserErr := WrapParserError(cause, "decode email")
	assert.EqualError(t, parserErr, "parser error: decode email: malformed MIME header line")
	assert.ErrorIs(t, parserErr, cause)
	assert.Equal(t, "parser error: decode email", (&ParserError{Message: "decode email"}).Error())
}
