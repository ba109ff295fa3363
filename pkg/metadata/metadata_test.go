package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const validDocument = `<!--MetaData
Title: Building a Static Site
Published: March 5, 2024
Edited: March 9, 2024
Preview:
A short look at generating pages
from plain Markdown files.
-->
# Heading

Body text.
`

func TestParseString_Valid(t *testing.T) {
	h, body, err := ParseString("articles/site/index.md", validDocument)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if h.Title != "Building a Static Site" {
		t.Errorf("Expected title 'Building a Static Site', got '%s'", h.Title)
	}

	if h.Published != "March 5, 2024" {
		t.Errorf("Expected published 'March 5, 2024', got '%s'", h.Published)
	}

	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !h.PublishedTime.Equal(want) {
		t.Errorf("Expected published time %v, got %v", want, h.PublishedTime)
	}

	if h.Edited != "March 9, 2024" {
		t.Errorf("Expected edited 'March 9, 2024', got '%s'", h.Edited)
	}

	wantPreview := "A short look at generating pages\nfrom plain Markdown files."
	if h.Preview != wantPreview {
		t.Errorf("Expected preview %q, got %q", wantPreview, h.Preview)
	}

	if body != "# Heading\n\nBody text.\n" {
		t.Errorf("Body not preserved verbatim: %q", body)
	}
}

func TestParse_Reader(t *testing.T) {
	h, _, err := Parse("index.md", strings.NewReader(validDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if h.Title != "Building a Static Site" {
		t.Errorf("Unexpected title %q", h.Title)
	}
}

func TestHeader_RenderRoundTrip(t *testing.T) {
	headers := []Header{
		{Title: "One", Published: "January 1, 2023", Edited: "January 2, 2023", Preview: "Short."},
		{Title: "Two words", Published: "December 31, 1999", Edited: "never", Preview: "line one\nline two"},
		{Title: "No preview", Published: "July 4, 2020", Edited: "July 4, 2020", Preview: ""},
		{Title: "宏福苑", Published: "November 26, 2025", Edited: "November 28, 2025", Preview: "多行\n預覽"},
	}

	for _, want := range headers {
		t.Run(want.Title, func(t *testing.T) {
			got, body, err := ParseString("index.md", want.Render()+"body\n")
			if err != nil {
				t.Fatalf("ParseString failed: %v", err)
			}

			if got.Title != want.Title || got.Published != want.Published ||
				got.Edited != want.Edited || got.Preview != want.Preview {
				t.Errorf("Round trip mismatch: got %+v, want %+v", *got, want)
			}

			if body != "body\n" {
				t.Errorf("Expected body 'body\\n', got %q", body)
			}
		})
	}
}

func TestParseString_PreviewTrimsBlankLineBeforeClose(t *testing.T) {
	doc := "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited: x\nPreview:\nfirst line\n\n-->\nbody"

	h, body, err := ParseString("index.md", doc)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if h.Preview != "first line" {
		t.Errorf("Expected preview 'first line', got %q", h.Preview)
	}

	if body != "body" {
		t.Errorf("Expected body 'body', got %q", body)
	}
}

func TestParseString_EmptyPreview(t *testing.T) {
	doc := "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited: x\nPreview:\n-->\n"

	h, body, err := ParseString("index.md", doc)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if h.Preview != "" {
		t.Errorf("Expected empty preview, got %q", h.Preview)
	}

	if body != "" {
		t.Errorf("Expected empty body, got %q", body)
	}
}

func TestParseString_CloseMarkerStopsAtFirstMatch(t *testing.T) {
	doc := "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited: x\nPreview:\np\n  -->  \n<!-- note -->\n-->\n"

	h, body, err := ParseString("index.md", doc)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if h.Preview != "p" {
		t.Errorf("Expected preview 'p', got %q", h.Preview)
	}

	if body != "<!-- note -->\n-->\n" {
		t.Errorf("Unexpected body %q", body)
	}
}

func TestParseString_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			name:     "Missing open tag",
			doc:      "Title: T\nPublished: January 1, 2023\n",
			expected: OpenTag,
		},
		{
			name:     "Open tag case differs",
			doc:      "<!--metadata\nTitle: T\n",
			expected: OpenTag,
		},
		{
			name:     "Indented title label",
			doc:      "<!--MetaData\n  Title: T\nPublished: January 1, 2023\n",
			expected: TitleLabel,
		},
		{
			name:     "Lowercase published label",
			doc:      "<!--MetaData\nTitle: T\npublished: January 1, 2023\n",
			expected: PublishedLabel,
		},
		{
			name:     "Missing edited line",
			doc:      "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nPreview:\n-->\n",
			expected: EditedLabel,
		},
		{
			name:     "Preview label with content",
			doc:      "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited: x\nPreview: inline\n-->\n",
			expected: PreviewTag,
		},
		{
			name:     "Truncated document",
			doc:      "<!--MetaData\nTitle: T\n",
			expected: PublishedLabel,
		},
		{
			name:     "Empty document",
			doc:      "",
			expected: OpenTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseString("articles/a/index.md", tt.doc)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Expected ErrSyntax, got %v", err)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Expected *SyntaxError, got %T", err)
			}

			if syntaxErr.Expected != tt.expected {
				t.Errorf("Expected token %q, got %q", tt.expected, syntaxErr.Expected)
			}

			if !strings.Contains(err.Error(), "articles/a/index.md") {
				t.Errorf("Error should name the file: %v", err)
			}
		})
	}
}

func TestParseString_HeaderNeverClosed(t *testing.T) {
	doc := "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited: x\nPreview:\npreview\n# Body without close\n"

	_, _, err := ParseString("articles/open/index.md", doc)
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Expected ErrSyntax, got %v", err)
	}

	if !strings.Contains(err.Error(), "articles/open/index.md") {
		t.Errorf("Error should name the file: %v", err)
	}

	if !strings.Contains(err.Error(), CloseTag) {
		t.Errorf("Error should name the close tag: %v", err)
	}
}

func TestParseString_DateFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"ISO date", "2024-01-01", false},
		{"Abbreviated month", "Jan 1, 2024", false},
		{"Missing comma", "January 1 2024", false},
		{"Empty", "", false},
		{"Single digit day", "January 1, 2023", true},
		{"Zero padded day", "March 05, 2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "<!--MetaData\nTitle: T\nPublished: " + tt.value + "\nEdited: x\nPreview:\n-->\n"

			_, _, err := ParseString("index.md", doc)
			if tt.valid {
				if err != nil {
					t.Errorf("Expected %q to parse, got %v", tt.value, err)
				}

				return
			}

			if !errors.Is(err, ErrDateFormat) {
				t.Errorf("Expected ErrDateFormat for %q, got %v", tt.value, err)
			}
		})
	}
}

func TestParseString_EditedNotParsed(t *testing.T) {
	doc := "<!--MetaData\nTitle: T\nPublished: January 1, 2023\nEdited:   sometime later  \nPreview:\n-->\n"

	h, _, err := ParseString("index.md", doc)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if h.Edited != "sometime later" {
		t.Errorf("Expected edited 'sometime later', got %q", h.Edited)
	}
}
