// Package splice replaces a placeholder line in a template with generated content.
package splice

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultMarker is the placeholder line both site templates carry.
const DefaultMarker = "<!--INSERT-->"

// ErrPlaceholderNotFound is returned when a template has no placeholder line.
var ErrPlaceholderNotFound = errors.New("placeholder not found")

// Splice replaces the first line of tmpl that is exactly marker followed by a
// newline with block. block is inserted as is; every other line is kept verbatim.
func Splice(tmpl, marker, block string) (string, error) {
	want := marker + "\n"
	lines := strings.SplitAfter(tmpl, "\n")

	for i, line := range lines {
		if line != want {
			continue
		}

		var sb strings.Builder

		sb.Grow(len(tmpl) - len(want) + len(block))

		for _, l := range lines[:i] {
			sb.WriteString(l)
		}

		sb.WriteString(block)

		for _, l := range lines[i+1:] {
			sb.WriteString(l)
		}

		return sb.String(), nil
	}

	return "", fmt.Errorf("%w: %q must appear as its own line, in this exact form (no leading spacing)",
		ErrPlaceholderNotFound, want)
}

// SpliceFile reads the template at path and splices block into it.
func SpliceFile(path, marker, block string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	out, err := Splice(string(data), marker, block)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", path, err)
	}

	return out, nil
}
