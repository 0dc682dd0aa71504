//go:build ignore

// Package main generates a synthetic thesis manuscript for load-testing
// the index build.
// Usage: go run scripts/generate-manuscript.go -chapters 12 -paragraphs 400 -output testdata/manuscript
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numChapters   = flag.Int("chapters", 12, "Number of chapter files")
	numParagraphs = flag.Int("paragraphs", 400, "Paragraphs per chapter")
	outputDir     = flag.String("output", "testdata/manuscript", "Output directory")
	seed          = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var (
	sections = []string{
		"Background", "Literature Review", "Methods", "Participants",
		"Data Collection", "Statistical Analysis", "Results", "Discussion",
		"Limitations", "Implications for Practice", "Conclusion",
	}

	vocabulary = []string{
		"patients", "nurses", "delirium", "screening", "intensive", "care",
		"outcomes", "mortality", "sedation", "ventilation", "assessment",
		"intervention", "cohort", "randomized", "protocol", "adherence",
		"incidence", "prevalence", "confidence", "interval", "regression",
		"qualitative", "interviews", "themes", "workload", "training",
		"guidelines", "implementation", "barriers", "facilitators",
		"hospital", "surgical", "older", "adults", "cognitive", "function",
		"length", "stay", "discharge", "follow", "measurement", "validity",
	}

	// fillers include stopwords so the tokenizer has something to drop.
	fillers = []string{"the", "of", "and", "in", "was", "were", "with", "for", "to", "a"}
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d chapters in %s...\n", *numChapters, *outputDir)

	for i := 1; i <= *numChapters; i++ {
		name := filepath.Join(*outputDir, fmt.Sprintf("chapter%02d.md", i))
		if err := os.WriteFile(name, []byte(chapter(rng, i)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d chapters with %d paragraphs each.\n", *numChapters, *numParagraphs)
}

func chapter(rng *rand.Rand, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Chapter %d\n\n", n)

	for p := 0; p < *numParagraphs; p++ {
		if p%25 == 0 {
			fmt.Fprintf(&sb, "## %s\n\n", sections[rng.Intn(len(sections))])
		}
		sb.WriteString(paragraph(rng))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func paragraph(rng *rand.Rand) string {
	words := make([]string, 12+rng.Intn(60))
	for i := range words {
		if rng.Intn(3) == 0 {
			words[i] = fillers[rng.Intn(len(fillers))]
		} else {
			words[i] = vocabulary[rng.Intn(len(vocabulary))]
		}
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}
