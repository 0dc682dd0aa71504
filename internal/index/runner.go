package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aman-CERP/thesisdash/internal/loader"
	"github.com/Aman-CERP/thesisdash/internal/segment"
	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

// RunnerResult contains the outcome of a build.
type RunnerResult struct {
	// Files is the number of files that contributed passages.
	Files int

	// Passages is the number of stored passages.
	Passages int

	// Terms is the size of the IDF table.
	Terms int

	// Output is where the index was written.
	Output string

	// Duration is the total build time.
	Duration time.Duration
}

// RunnerDependencies contains the injected dependencies for Runner.
type RunnerDependencies struct {
	// Loader reads manuscript files (required).
	Loader *loader.Loader

	// Tokenizer defines the stopword set (required).
	Tokenizer *tokenize.Tokenizer

	// Now returns the build timestamp. Defaults to time.Now in UTC.
	Now func() time.Time

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Runner executes the load, segment, aggregate and emit pipeline.
type Runner struct {
	loader    *loader.Loader
	tokenizer *tokenize.Tokenizer
	segmenter *segment.Segmenter
	now       func() time.Time
	logger    *slog.Logger
}

// NewRunner creates a Runner with injected dependencies.
func NewRunner(deps RunnerDependencies) (*Runner, error) {
	if deps.Loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if deps.Tokenizer == nil {
		return nil, fmt.Errorf("tokenizer is required")
	}

	r := &Runner{
		loader:    deps.Loader,
		tokenizer: deps.Tokenizer,
		segmenter: segment.New(deps.Tokenizer),
		now:       deps.Now,
		logger:    deps.Logger,
	}
	if r.now == nil {
		r.now = func() time.Time { return time.Now().UTC() }
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// Build loads every source and returns the finished index without writing it.
func (r *Runner) Build(ctx context.Context) (*Index, error) {
	sources, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator()
	for _, src := range sources {
		stored := 0
		for _, p := range r.segmenter.Segment(src.Text) {
			if agg.Add(src.Name, src.Stem, p) {
				stored++
			}
		}
		r.logger.Debug("manuscript_file_segmented",
			slog.String("file", src.Name),
			slog.Int("passages", stored))
	}

	if agg.Len() == 0 {
		r.logger.Warn("no_passages_extracted",
			slog.String("manuscript", r.loader.Dir()))
	}

	return agg.Finalize(r.now(), r.tokenizer.StopWordCount()), nil
}

// Run builds the index and writes it to output.
// Only a failure to write output is returned as an error, apart from
// context cancellation.
func (r *Runner) Run(ctx context.Context, output string) (*RunnerResult, error) {
	start := time.Now()

	idx, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := Write(output, idx); err != nil {
		return nil, err
	}

	result := &RunnerResult{
		Files:    len(idx.Meta.SourceFiles),
		Passages: idx.Meta.TotalPassages,
		Terms:    len(idx.IDF),
		Output:   output,
		Duration: time.Since(start),
	}

	r.logger.Info("index_written",
		slog.String("output", output),
		slog.Int("passages", result.Passages),
		slog.Int("files", result.Files),
		slog.Int("terms", result.Terms),
		slog.Duration("duration", result.Duration))

	return result, nil
}
