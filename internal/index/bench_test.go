package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Aman-CERP/thesisdash/internal/loader"
	"github.com/Aman-CERP/thesisdash/internal/segment"
	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

func BenchmarkRunner_Build(b *testing.B) {
	dir := b.TempDir()
	paragraph := "Nurses assessed delirium with a validated screening protocol in the intensive care unit."
	for c := 1; c <= 10; c++ {
		var sb strings.Builder
		fmt.Fprintf(&sb, "# Chapter %d\n\n", c)
		for p := 0; p < 200; p++ {
			sb.WriteString(paragraph)
			sb.WriteString("\n\n")
		}
		name := filepath.Join(dir, fmt.Sprintf("chapter%02d.md", c))
		if err := os.WriteFile(name, []byte(sb.String()), 0o644); err != nil {
			b.Fatal(err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := NewRunner(RunnerDependencies{
		Loader:    loader.New(dir, loader.WithLogger(logger)),
		Tokenizer: tokenize.New(),
		Now:       fixedNow,
		Logger:    logger,
	})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx, err := r.Build(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if idx.Meta.TotalPassages != 2000 {
			b.Fatalf("expected 2000 passages, got %d", idx.Meta.TotalPassages)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	tok := tokenize.New()
	agg := NewAggregator()
	for _, p := range benchParagraphs(tok, 2000) {
		agg.Add("thesis.md", "thesis", p)
	}
	idx := agg.Finalize(fixedNow(), tok.StopWordCount())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Encode(io.Discard, idx); err != nil {
			b.Fatal(err)
		}
	}
}

func benchParagraphs(tok *tokenize.Tokenizer, n int) []segment.Paragraph {
	words := []string{"delirium", "sedation", "nurses", "protocol", "cohort", "mortality", "screening", "outcomes"}
	paras := make([]segment.Paragraph, n)
	for i := range paras {
		text := strings.Join([]string{words[i%8], words[(i+3)%8], words[(i+5)%8], "patients", "were", "observed"}, " ")
		paras[i] = segment.Paragraph{Index: i, Text: text, Tokens: tok.Tokenize(text)}
	}
	return paras
}
