package email

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	lineBreakSelector = cascadia.MustCompile("br, p, div, tr, li, h1, h2, h3, h4, h5, h6, table, blockquote, pre")
	cellSelector      = cascadia.MustCompile("td, th")
	htmlWhitespace    = regexp.MustCompile(`[\s\x{00a0}]+`)
)

// HTMLToText renders an HTML body as plain text, one line per block element,
// so that line oriented report templates survive HTML-only messages.
func HTMLToText(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	doc.Find("head, script, style").Remove()

	var sb strings.Builder
	for _, node := range doc.Find("body").Nodes {
		writeText(&sb, node)
	}

	lines := strings.Split(sb.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n"), nil
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(htmlWhitespace.ReplaceAllString(n.Data, " "))
		return
	case html.CommentNode:
		return
	}

	isBlock := n.Type == html.ElementNode && lineBreakSelector.Match(n)
	if isBlock {
		sb.WriteByte('\n')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}

	if isBlock && n.Data != "br" {
		sb.WriteByte('\n')
	}
	if n.Type == html.ElementNode && cellSelector.Match(n) {
		sb.WriteByte(' ')
	}
}
