// Package main provides the static site generator command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"articlegen/internal/config"
	"articlegen/internal/formatter"
	"articlegen/internal/logger"
	"articlegen/internal/render"
	"articlegen/internal/site"
)

const defaultConfigPath = "articlegen.yaml"

type options struct {
	Config   string `long:"config" short:"c" env:"ARTICLEGEN_CONFIG" description:"Path to YAML configuration file"`
	Root     string `long:"root" short:"r" env:"ARTICLEGEN_ROOT" description:"Articles root directory (overrides articles.root)"`
	LogLevel string `long:"log-level" env:"ARTICLEGEN_LOG_LEVEL" description:"Log level: debug, info, warn, error"`
	Workers  int    `long:"workers" env:"ARTICLEGEN_WORKERS" description:"Number of article pages rendered in parallel"`
	List     bool   `long:"list" short:"l" description:"Print the article catalog and exit without writing files"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "articlegen: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts.List, log); err != nil {
		log.Error("generation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the YAML file, if any, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()

	configPath := opts.Config
	if configPath == "" {
		if _, statErr := os.Stat(defaultConfigPath); statErr == nil {
			configPath = defaultConfigPath
		}
	}

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if opts.Root != "" {
		cfg.Articles.Root = opts.Root
	}

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if opts.Workers != 0 {
		cfg.Render.Workers = opts.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, list bool, log *logger.Logger) error {
	log.Debug("configuration loaded", "config", cfg.String())

	gen := site.NewGenerator(cfg, render.NewGoldmarkConverter(cfg.Markdown), log)

	if list {
		articles, err := gen.Load(ctx)
		if err != nil {
			return err
		}

		fmt.Print(formatter.ArticleTable(articles))

		return nil
	}

	result, err := gen.Build(ctx)
	if err != nil {
		return err
	}

	log.Info("site generated", "articles", len(result.Articles), "homepage", result.Homepage)

	return nil
}
