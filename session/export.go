package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Generated content mixes markdown with raw HTML, so HTML blocks and inline
// tags are passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", apperr.NewInvalidInput(fmt.Sprintf("Unsupported export format: %s", s))
	}
}

// Export renders the document in the session in the requested format.
func (f *Flow) Export(sess *State, format Format) (string, error) {
	if sess.Document == nil {
		return "", apperr.NewInvalidInput("No blog content found.")
	}

	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(sess.Document, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode document: %w", err)
		}
		return string(out), nil
	case FormatMarkdown:
		return sess.Document.Content, nil
	case FormatHTML:
		return HTMLContent(sess.Document)
	default:
		return "", apperr.NewInvalidInput(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

// HTMLContent returns the content as HTML. Content that already starts with
// a tag is returned as is, anything else is rendered as markdown with its
// HTML kept.
func HTMLContent(doc *model.BlogDocument) (string, error) {
	trimmed := strings.TrimSpace(doc.Content)
	if trimmed == "" || strings.HasPrefix(trimmed, "<") {
		return doc.Content, nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(doc.Content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return buf.String(), nil
}
