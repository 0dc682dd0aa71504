// Package tokenize turns passage and query text into normalized terms.
//
// The same rules apply at index time and at query time, so a retrieval
// client that tokenizes differently will score against the wrong vectors.
package tokenize

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest term kept after lower-casing.
const MinTokenLength = 3

// tokenRegex matches maximal runs of two or more ASCII letters.
// Digits, punctuation and non-ASCII letters act as separators.
var tokenRegex = regexp.MustCompile(`[A-Za-z]{2,}`)

// DefaultStopWords is the fixed English stopword list.
var DefaultStopWords = []string{
	"the", "a", "an", "and", "or", "of", "to", "in", "for", "on",
	"with", "is", "are", "was", "were", "be", "by", "as", "that", "this",
	"it", "at", "from", "we", "our", "their", "there", "which", "these", "those",
	"has", "had", "have", "but", "not", "can", "may", "also", "than", "such",
	"its", "into", "using", "used", "between", "more", "most",
}

// Tokenizer extracts terms using a stopword set.
type Tokenizer struct {
	stopWords map[string]struct{}
}

// New creates a tokenizer with the default stopwords plus any extras.
func New(extra ...string) *Tokenizer {
	words := make([]string, 0, len(DefaultStopWords)+len(extra))
	words = append(words, DefaultStopWords...)
	words = append(words, extra...)
	return &Tokenizer{stopWords: BuildStopWordMap(words)}
}

// Tokenize returns the ordered term sequence for text.
// The result is never nil.
func (t *Tokenizer) Tokenize(text string) []string {
	matches := tokenRegex.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		lower := strings.ToLower(m)
		if len(lower) < MinTokenLength {
			continue
		}
		if _, isStop := t.stopWords[lower]; isStop {
			continue
		}
		tokens = append(tokens, lower)
	}
	return tokens
}

// IsStopWord reports whether word is in the effective stopword set.
func (t *Tokenizer) IsStopWord(word string) bool {
	_, ok := t.stopWords[strings.ToLower(word)]
	return ok
}

// StopWordCount is the size of the effective stopword set.
func (t *Tokenizer) StopWordCount() int {
	return len(t.stopWords)
}

// BuildStopWordMap converts a slice of stop words to a map for efficient lookup.
// Blank entries are ignored.
func BuildStopWordMap(stopWords []string) map[string]struct{} {
	m := make(map[string]struct{}, len(stopWords))
	for _, word := range stopWords {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return m
}
