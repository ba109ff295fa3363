// Package render builds the homepage and article pages from parsed articles.
package render

import (
	"fmt"
	"html"
	"strings"

	"articlegen/internal/config"
	"articlegen/internal/models"
	"articlegen/internal/splice"
)

// Renderer produces page contents. It does not write files.
type Renderer struct {
	cfg       *config.Config
	converter Converter
}

// NewRenderer creates a renderer using cfg for templates and converter for bodies.
func NewRenderer(cfg *config.Config, converter Converter) *Renderer {
	return &Renderer{cfg: cfg, converter: converter}
}

// HomepageEntry renders the list entry linking to one article. The preview
// becomes the link's hover text.
func (r *Renderer) HomepageEntry(a *models.Article) string {
	dir, title, preview := a.Directory, a.Title, a.Preview
	if r.cfg.Homepage.EscapeHTML {
		dir, title, preview = html.EscapeString(dir), html.EscapeString(title), html.EscapeString(preview)
	}

	return fmt.Sprintf("<div><a href=\"%s%s/\" title=\"%s\">%s</a>: %s</div>\n",
		r.cfg.Homepage.LinkPrefix, dir, preview, title, a.PublishedDate)
}

// Homepage renders the homepage for articles, which must already be sorted.
func (r *Renderer) Homepage(articles []*models.Article) (string, error) {
	var sb strings.Builder
	for _, a := range articles {
		sb.WriteString(r.HomepageEntry(a))
	}

	return splice.SpliceFile(r.cfg.HomepageTemplatePath(), r.cfg.Templates.Marker, sb.String())
}

// Article renders the page of a single article.
func (r *Renderer) Article(a *models.Article) (string, error) {
	body, err := r.converter.Convert([]byte(a.Markdown))
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.SourcePath, err)
	}

	return splice.SpliceFile(r.cfg.ArticleTemplatePath(), r.cfg.Templates.Marker, string(body))
}
