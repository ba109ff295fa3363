// Package site runs the whole generation pipeline: scan, parse, sort,
// render the homepage, then render every article page.
package site

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"articlegen/internal/articles"
	"articlegen/internal/config"
	"articlegen/internal/logger"
	"articlegen/internal/models"
	"articlegen/internal/render"
)

// Result describes a finished run.
type Result struct {
	Articles     []*models.Article
	Homepage     string
	ArticlePages []string
}

// Generator builds the static site described by a configuration.
type Generator struct {
	cfg      *config.Config
	loader   *articles.Loader
	renderer *render.Renderer
	log      *logger.Logger
}

// NewGenerator wires a generator. converter renders article bodies.
func NewGenerator(cfg *config.Config, converter render.Converter, log *logger.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		loader:   articles.NewLoader(cfg.Articles.Root, cfg.Articles.Document),
		renderer: render.NewRenderer(cfg, converter),
		log:      log,
	}
}

// Load scans and parses every article and returns them newest first.
func (g *Generator) Load(ctx context.Context) ([]*models.Article, error) {
	list, err := g.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	articles.Sort(list)
	g.log.Debug("loaded articles", "count", len(list), "root", g.cfg.Articles.Root)

	return list, nil
}

// Build generates the homepage and one page per article. The first error
// aborts the run.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	list, err := g.Load(ctx)
	if err != nil {
		return nil, err
	}

	homepage, err := g.renderer.Homepage(list)
	if err != nil {
		return nil, err
	}

	homepagePath := g.cfg.HomepageOutputPath()
	if err := writeFile(homepagePath, homepage); err != nil {
		return nil, err
	}

	g.log.Info("generated homepage", "path", homepagePath, "articles", len(list))

	pages := make([]string, len(list))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.cfg.Render.Workers)

	for i, article := range list {
		i, article := i, article
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			path, err := g.buildArticle(article)
			if err != nil {
				return err
			}

			pages[i] = path

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &Result{Articles: list, Homepage: homepagePath, ArticlePages: pages}, nil
}

func (g *Generator) buildArticle(article *models.Article) (string, error) {
	page, err := g.renderer.Article(article)
	if err != nil {
		return "", err
	}

	path := g.cfg.ArticleOutputPath(article.Directory)
	if err := writeFile(path, page); err != nil {
		return "", err
	}

	g.log.Info("generated article", "path", path)

	return path, nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
