// Package articles finds article bundles on disk and loads them.
package articles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"articlegen/internal/models"
	"articlegen/pkg/metadata"
)

// Loader reads article bundles from a root directory. Every immediate
// subdirectory of root is one bundle holding a document named document.
type Loader struct {
	root     string
	document string
}

// NewLoader creates a loader for the given root and document file name.
func NewLoader(root, document string) *Loader {
	return &Loader{root: root, document: document}
}

// Scan returns the bundle directory names in lexical order. Regular files
// and dot-prefixed directories are skipped.
func (l *Loader) Scan() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles root: %w", err)
	}

	var dirs []string

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		dirs = append(dirs, entry.Name())
	}

	return dirs, nil
}

// Load parses the document of a single bundle.
func (l *Loader) Load(directory string) (*models.Article, error) {
	path := filepath.Join(l.root, directory, l.document)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open article: %w", err)
	}
	defer f.Close()

	header, body, err := metadata.Parse(path, f)
	if err != nil {
		return nil, err
	}

	return models.NewArticle(header, body, directory, path), nil
}

// LoadAll loads every bundle under root, stopping at the first error.
// The result is in scan order; use Sort for publish order.
func (l *Loader) LoadAll(ctx context.Context) ([]*models.Article, error) {
	dirs, err := l.Scan()
	if err != nil {
		return nil, err
	}

	articles := make([]*models.Article, 0, len(dirs))

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := l.Load(dir)
		if err != nil {
			return nil, err
		}

		articles = append(articles, article)
	}

	return articles, nil
}

// Sort orders articles newest first. Articles published on the same day
// keep their relative order.
func Sort(articles []*models.Article) {
	slices.SortStableFunc(articles, func(a, b *models.Article) int {
		return b.PublishedTime.Compare(a.PublishedTime)
	})
}
