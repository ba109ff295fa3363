// Package metadata parses the comment header that opens every article document.
//
// The header is a fixed-position block:
//
//	<!--MetaData
//	Title: Some title
//	Published: March 5, 2024
//	Edited: March 6, 2024
//	Preview:
//	One or more lines of preview text.
//	-->
//	(Markdown body)
package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// OpenTag is the first line of the header block.
	OpenTag = "<!--MetaData"
	// TitleLabel prefixes the title line.
	TitleLabel = "Title:"
	// PublishedLabel prefixes the publish date line.
	PublishedLabel = "Published:"
	// EditedLabel prefixes the edit date line.
	EditedLabel = "Edited:"
	// PreviewTag opens the multi-line preview.
	PreviewTag = "Preview:"
	// CloseTag ends the header block.
	CloseTag = "-->"

	// DateLayout is the "Month DD, YYYY" format used by Published.
	DateLayout = "January 2, 2006"
)

// Header parse errors.
var (
	ErrSyntax     = errors.New("incorrect markdown syntax")
	ErrDateFormat = errors.New("published date does not match \"Month DD, YYYY\"")
)

// SyntaxError reports a header line that does not carry the expected token.
type SyntaxError struct {
	Path     string
	Expected string
	Reason   string
	Line     int
}

func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: expected header to end with %s, but %s", e.Path, e.Expected, e.Reason)
	}

	return fmt.Sprintf("%s:%d: (Expected: %s) %v", e.Path, e.Line+1, e.Expected, ErrSyntax)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Header holds the fields extracted from the header block.
type Header struct {
	PublishedTime time.Time
	Title         string
	Published     string
	Edited        string
	Preview       string
}

// Render serializes the header back into its block form.
func (h *Header) Render() string {
	var sb strings.Builder

	sb.WriteString(OpenTag + "\n")
	sb.WriteString(TitleLabel + " " + h.Title + "\n")
	sb.WriteString(PublishedLabel + " " + h.Published + "\n")
	sb.WriteString(EditedLabel + " " + h.Edited + "\n")
	sb.WriteString(PreviewTag + "\n")

	if h.Preview != "" {
		sb.WriteString(h.Preview + "\n")
	}

	sb.WriteString(CloseTag + "\n")

	return sb.String()
}

type state int

const (
	expectOpen state = iota
	expectTitle
	expectPublished
	expectEdited
	expectPreviewOpen
	collectPreview
	body
)

type parser struct {
	path  string
	lines []string
	pos   int
}

// Parse reads a whole document and splits it into its header and body.
// The path is only used to identify the document in errors.
func Parse(path string, r io.Reader) (*Header, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseString(path, string(data))
}

// ParseString is Parse over an in-memory document.
func ParseString(path, content string) (*Header, string, error) {
	p := &parser{path: path, lines: splitLines(content)}

	return p.run()
}

func (p *parser) run() (*Header, string, error) {
	h := &Header{}

	for st := expectOpen; st != body; {
		switch st {
		case expectOpen:
			if err := p.exact(OpenTag); err != nil {
				return nil, "", err
			}

			st = expectTitle

		case expectTitle:
			title, err := p.field(TitleLabel)
			if err != nil {
				return nil, "", err
			}

			h.Title = title
			st = expectPublished

		case expectPublished:
			published, err := p.field(PublishedLabel)
			if err != nil {
				return nil, "", err
			}

			t, err := time.Parse(DateLayout, published)
			if err != nil {
				return nil, "", fmt.Errorf("%s: %w: got %q", p.path, ErrDateFormat, published)
			}

			h.Published = published
			h.PublishedTime = t
			st = expectEdited

		case expectEdited:
			edited, err := p.field(EditedLabel)
			if err != nil {
				return nil, "", err
			}

			h.Edited = edited
			st = expectPreviewOpen

		case expectPreviewOpen:
			if err := p.exact(PreviewTag); err != nil {
				return nil, "", err
			}

			st = collectPreview

		case collectPreview:
			start := p.pos
			for p.pos < len(p.lines) && strings.TrimSpace(p.lines[p.pos]) != CloseTag {
				p.pos++
			}

			if p.pos == len(p.lines) {
				return nil, "", &SyntaxError{
					Path:     p.path,
					Expected: CloseTag,
					Reason:   "never encountered",
					Line:     p.pos,
				}
			}

			h.Preview = strings.TrimSpace(strings.Join(p.lines[start:p.pos], ""))
			p.pos++
			st = body
		}
	}

	return h, strings.Join(p.lines[p.pos:], ""), nil
}

// exact consumes a line whose trimmed content must equal token.
func (p *parser) exact(token string) error {
	if p.pos >= len(p.lines) || strings.TrimSpace(p.lines[p.pos]) != token {
		return p.syntaxError(token)
	}

	p.pos++

	return nil
}

// field consumes a line that must start with label and returns the trimmed remainder.
func (p *parser) field(label string) (string, error) {
	if p.pos >= len(p.lines) || !strings.HasPrefix(p.lines[p.pos], label) {
		return "", p.syntaxError(label)
	}

	value := strings.TrimSpace(strings.TrimPrefix(p.lines[p.pos], label))
	p.pos++

	return value, nil
}

func (p *parser) syntaxError(expected string) error {
	return &SyntaxError{Path: p.path, Expected: expected, Line: p.pos}
}

// splitLines splits content into lines that keep their terminators, so the
// body can be rejoined byte for byte.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
