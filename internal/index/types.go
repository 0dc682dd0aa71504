// Package index builds, writes and reads the thesis passage index.
//
// The index is a single JSON document with three top-level keys: meta,
// documents and idf. It is rebuilt from scratch on every run.
package index

import (
	"time"
)

// Passage is one retrievable paragraph with its term-frequency vector.
type Passage struct {
	// ID is "<file-stem>::<paragraph-index>".
	ID string `json:"id"`
	// File is the source file's base name.
	File string `json:"file"`
	// Section is the nearest preceding heading; encoded as null when absent.
	Section *string `json:"section"`
	// Text is the trimmed paragraph as written.
	Text string `json:"text"`
	// Tokens is the normalized term sequence. Never empty.
	Tokens []string `json:"tokens"`
	// TF maps term to relative frequency within the passage.
	TF map[string]float64 `json:"tf"`
	// Norm is the L2 norm of TF values, 1.0 when that would be zero.
	Norm float64 `json:"norm"`
}

// Meta describes a build.
type Meta struct {
	TotalPassages int       `json:"total_passages"`
	BuiltAt       time.Time `json:"built_at"`
	SourceFiles   []string  `json:"source_files"`
	Stopwords     int       `json:"stopwords"`
}

// Index is the complete corpus index.
type Index struct {
	Meta      Meta               `json:"meta"`
	Documents []Passage          `json:"documents"`
	IDF       map[string]float64 `json:"idf"`
}

// Empty returns an index with no passages and non-nil collections.
func Empty(builtAt time.Time, stopwords int) *Index {
	return &Index{
		Meta: Meta{
			BuiltAt:     builtAt,
			SourceFiles: []string{},
			Stopwords:   stopwords,
		},
		Documents: []Passage{},
		IDF:       map[string]float64{},
	}
}

// normalize replaces nil collections so they encode as [] and {}.
func (idx *Index) normalize() {
	if idx.Documents == nil {
		idx.Documents = []Passage{}
	}
	if idx.IDF == nil {
		idx.IDF = map[string]float64{}
	}
	if idx.Meta.SourceFiles == nil {
		idx.Meta.SourceFiles = []string{}
	}
}
