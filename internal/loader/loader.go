// Package loader reads manuscript files into raw text.
//
// Only direct children of the manuscript directory are considered, in
// name order. Files with a recognized extension but no registered parser,
// unreadable files and parse failures are skipped with a warning. A missing
// directory yields no sources.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// RecognizedExtensions are the manuscript file types the loader considers.
// Anything else is ignored without a log line.
var RecognizedExtensions = []string{".md", ".txt", ".docx"}

// IsRecognized reports whether name carries a recognized extension.
func IsRecognized(name string) bool {
	_, ext := splitExt(name)
	return slices.Contains(RecognizedExtensions, ext)
}

// Source is one manuscript file's raw text.
type Source struct {
	// Name is the file's base name, used for provenance.
	Name string
	// Stem is Name without its final extension.
	Stem string
	// Ext is the lower-cased extension with leading dot.
	Ext string
	// Path is the full path that was read.
	Path string
	// Text is the decoded raw text.
	Text string
}

// Loader enumerates and parses manuscript files.
type Loader struct {
	dir        string
	parsers    map[string]DocumentParser
	recognized map[string]struct{}
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithParser registers p for its extensions, replacing earlier parsers.
func WithParser(p DocumentParser) Option {
	return func(l *Loader) {
		for _, ext := range p.Extensions() {
			l.parsers[ext] = p
		}
	}
}

// WithLogger sets the logger used for found/skipped messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader for dir with the plain text parser registered.
// The docx capability is added with WithParser(NewDocxParser()).
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:        dir,
		parsers:    make(map[string]DocumentParser),
		recognized: make(map[string]struct{}, len(RecognizedExtensions)),
		logger:     slog.Default(),
	}
	for _, ext := range RecognizedExtensions {
		l.recognized[ext] = struct{}{}
	}
	WithParser(NewTextParser())(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the manuscript directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads every eligible file. Only context cancellation is returned as
// an error; per-file problems are logged and the file is left out.
func (l *Loader) Load(ctx context.Context) ([]Source, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		code := errors.ErrCodeFileUnreadable
		if os.IsNotExist(err) {
			code = errors.ErrCodeManuscriptNotFound
		}
		de := errors.New(code, fmt.Sprintf("manuscript directory unavailable: %s", l.dir), err)
		l.logger.Warn("manuscript_dir_missing", errors.FormatForLog(de)...)
		return nil, nil
	}

	// os.ReadDir returns entries sorted by file name.
	var sources []Source
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(l.dir, entry.Name())
		if !isRegularFile(path, entry) {
			continue
		}

		stem, ext := splitExt(entry.Name())
		if _, ok := l.recognized[ext]; !ok {
			continue
		}

		src, err := l.loadFile(ctx, path, entry.Name(), stem, ext)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Warn("manuscript_file_skipped",
				append([]any{slog.String("file", entry.Name())}, errors.FormatForLog(err)...)...)
			continue
		}

		l.logger.Info("manuscript_file_found",
			slog.String("file", entry.Name()),
			slog.Int("chars", len(src.Text)))
		sources = append(sources, src)
	}

	return sources, nil
}

func (l *Loader) loadFile(ctx context.Context, path, name, stem, ext string) (Source, error) {
	parser, ok := l.parsers[ext]
	if !ok {
		return Source{}, errors.New(errors.ErrCodeParserUnavailable,
			fmt.Sprintf("no parser available for %s files", ext), nil).
			WithSuggestion("Enable index.docx in .thesisdash.yaml")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Source{}, errors.New(errors.ErrCodeFileUnreadable, "cannot read file", err)
	}

	text, err := parser.Parse(ctx, name, content)
	if err != nil {
		return Source{}, errors.New(errors.ErrCodeParseFailed, "cannot parse file", err)
	}

	return Source{Name: name, Stem: stem, Ext: ext, Path: path, Text: text}, nil
}

// isRegularFile follows symlinks, so a link to a regular file counts.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
