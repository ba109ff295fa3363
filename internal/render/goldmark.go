package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"articlegen/internal/config"
)

// Converter turns a markdown body into HTML.
type Converter interface {
	Convert(source []byte) ([]byte, error)
}

// GoldmarkConverter implements Converter with the goldmark engine. A new
// engine is built per call, so one converter can serve several workers.
type GoldmarkConverter struct {
	opts config.MarkdownConfig
}

// NewGoldmarkConverter creates a converter from the markdown settings.
func NewGoldmarkConverter(opts config.MarkdownConfig) *GoldmarkConverter {
	return &GoldmarkConverter{opts: opts}
}

// Convert renders source to HTML.
func (c *GoldmarkConverter) Convert(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.engine().Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	return buf.Bytes(), nil
}

func (c *GoldmarkConverter) engine() goldmark.Markdown {
	var rendererOptions []renderer.Option

	if c.opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if c.opts.UnsafeHTML {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	var engineOptions []goldmark.Option

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if exts := collectExtensions(c.opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions maps names to extenders, dropping duplicates and unknown names.
func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender

	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
