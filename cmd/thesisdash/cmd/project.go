package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Aman-CERP/thesisdash/internal/config"
	"github.com/Aman-CERP/thesisdash/internal/index"
	"github.com/Aman-CERP/thesisdash/internal/loader"
	"github.com/Aman-CERP/thesisdash/internal/search"
	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

// project is a loaded configuration anchored at its root directory.
type project struct {
	root string
	cfg  *config.Config
}

// loadProject finds the project root above start and loads its config.
func loadProject(start string) (*project, error) {
	root, err := config.FindProjectRoot(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return &project{root: root, cfg: cfg}, nil
}

// overridePath replaces a configured path with a flag value. Flag values
// are relative to the working directory, not the project root.
func overridePath(dst *string, flag string) error {
	if flag == "" {
		return nil
	}
	abs, err := filepath.Abs(flag)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", flag, err)
	}
	*dst = abs
	return nil
}

func (p *project) manuscriptDir() string {
	return config.Resolve(p.root, p.cfg.Paths.Manuscript)
}

func (p *project) outputPath() string {
	return config.Resolve(p.root, p.cfg.Paths.Output)
}

func (p *project) serveRoot() string {
	return config.Resolve(p.root, p.cfg.Paths.ServeRoot)
}

func (p *project) tokenizer() *tokenize.Tokenizer {
	return tokenize.New(p.cfg.Index.ExtraStopwords...)
}

func (p *project) newRunner(logger *slog.Logger) (*index.Runner, error) {
	opts := []loader.Option{loader.WithLogger(logger)}
	if p.cfg.DocxEnabled() {
		opts = append(opts, loader.WithParser(loader.NewDocxParser()))
	}

	return index.NewRunner(index.RunnerDependencies{
		Loader:    loader.New(p.manuscriptDir(), opts...),
		Tokenizer: p.tokenizer(),
		Logger:    logger,
	})
}

func (p *project) indexFile() *search.IndexFile {
	return search.OpenIndexFile(p.outputPath(), p.tokenizer(), search.DefaultCacheSize)
}
