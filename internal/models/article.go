// Package models defines the data structures shared by the site generator.
package models

import (
	"time"

	"articlegen/pkg/metadata"
)

// Article is one parsed article bundle.
type Article struct {
	PublishedTime time.Time
	Title         string
	PublishedDate string
	EditedDate    string
	Preview       string
	Markdown      string
	Directory     string
	SourcePath    string
}

// NewArticle builds an Article from a parsed header and its body.
func NewArticle(h *metadata.Header, body, directory, sourcePath string) *Article {
	return &Article{
		PublishedTime: h.PublishedTime,
		Title:         h.Title,
		PublishedDate: h.Published,
		EditedDate:    h.Edited,
		Preview:       h.Preview,
		Markdown:      body,
		Directory:     directory,
		SourcePath:    sourcePath,
	}
}
