package converter

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/studiowebux/inkpad/internal/tabs"
)

// Converter translates between markdown files and the editor's rich form.
// It is called exactly at the open and save boundaries.
type Converter interface {
	ToMarkdown(rich string) (string, error)
	FromMarkdown(text string) (string, error)
}

// Markdown converts with goldmark (markdown to HTML) and html-to-markdown
// (HTML back to markdown)
type Markdown struct {
	parser goldmark.Markdown
	writer *md.Converter
}

// NewMarkdown creates the default converter
func NewMarkdown() *Markdown {
	return &Markdown{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		writer: md.NewConverter("", true, &md.Options{
			HeadingStyle:     "atx",
			BulletListMarker: "-",
			CodeBlockStyle:   "fenced",
			EmDelimiter:      "*",
			StrongDelimiter:  "**",
		}),
	}
}

// FromMarkdown renders text to the rich form. Empty input yields the
// canonical empty document.
func (c *Markdown) FromMarkdown(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return tabs.EmptyDocument, nil
	}

	var buf bytes.Buffer
	if err := c.parser.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to parse markdown: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ToMarkdown converts rich content back to markdown, ending with a newline
// unless the document is empty
func (c *Markdown) ToMarkdown(rich string) (string, error) {
	if tabs.IsEmpty(rich) {
		return "", nil
	}

	text, err := c.writer.ConvertString(rich)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	return text + "\n", nil
}
