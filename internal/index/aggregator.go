package index

import (
	"fmt"
	"sort"
	"time"

	"github.com/Aman-CERP/thesisdash/internal/segment"
)

// Aggregator accumulates passages and document frequencies across files.
// IDF can only be derived once every passage has been added.
type Aggregator struct {
	passages []Passage
	df       map[string]int
	files    map[string]struct{}
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		df:    make(map[string]int),
		files: make(map[string]struct{}),
	}
}

// Add stores a paragraph as a passage of file. Paragraphs without tokens
// are dropped and Add reports false.
func (a *Aggregator) Add(file, stem string, p segment.Paragraph) bool {
	if len(p.Tokens) == 0 {
		return false
	}

	tf, order := TermFrequencies(p.Tokens)
	for _, t := range order {
		a.df[t]++
	}
	a.files[file] = struct{}{}

	a.passages = append(a.passages, Passage{
		ID:      fmt.Sprintf("%s::%d", stem, p.Index),
		File:    file,
		Section: p.Section,
		Text:    p.Text,
		Tokens:  p.Tokens,
		TF:      tf,
		Norm:    Norm(tf, order),
	})
	return true
}

// Len returns the number of stored passages.
func (a *Aggregator) Len() int {
	return len(a.passages)
}

// DocumentFrequency returns how many stored passages contain term.
func (a *Aggregator) DocumentFrequency(term string) int {
	return a.df[term]
}

// Finalize derives the IDF table and assembles the index.
func (a *Aggregator) Finalize(builtAt time.Time, stopwords int) *Index {
	idx := Empty(builtAt, stopwords)
	if len(a.passages) == 0 {
		return idx
	}

	n := len(a.passages)
	for term, df := range a.df {
		idx.IDF[term] = IDF(df, n)
	}

	files := make([]string, 0, len(a.files))
	for f := range a.files {
		files = append(files, f)
	}
	sort.Strings(files)

	idx.Documents = append(idx.Documents, a.passages...)
	idx.Meta.TotalPassages = n
	idx.Meta.SourceFiles = files
	return idx
}
