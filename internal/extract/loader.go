package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/policylens/internal/model"
	"golang.org/x/net/html"
)

// Loader reads already-extracted policy text from disk.
// Binary formats (PDF, DOCX) must be converted to text before they reach policylens.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader that rejects documents larger than maxBytes
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = 10_000_000
	}
	return &Loader{maxBytes: maxBytes}
}

// Load returns the text of the document at path
func (l *Loader) Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text", ".md", ".markdown", "":
	case ".html", ".htm":
	default:
		return "", fmt.Errorf("%w: %q (convert to plain text first)", model.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Read(f, ext)
}

// Read decodes a document stream; ext selects HTML or plain text handling
func (l *Loader) Read(r io.Reader, ext string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return "", fmt.Errorf("%w: exceeds %d bytes", model.ErrDocumentTooLarge, l.maxBytes)
	}

	switch strings.ToLower(ext) {
	case ".html", ".htm":
		doc, err := html.Parse(strings.NewReader(string(data)))
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
		return visibleText(doc), nil
	default:
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
}

// visibleText extracts text nodes from HTML, skipping scripts/styles.
// Block elements end a line so the segmenter still sees headings on their own lines.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(n)

	lines := strings.Split(buf.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "table", "body":
		return true
	}
	return false
}
