// Package segment splits manuscript text into paragraph passages and
// labels each with the nearest preceding markdown heading.
package segment

import (
	"regexp"
	"strings"

	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

// MinWords is the minimum whitespace-delimited word count for a passage.
// Shorter paragraphs are captions, stray headings or table fragments.
const MinWords = 5

// blankLinePattern matches one or more blank lines, including lines that
// hold only Unicode whitespace.
var blankLinePattern = regexp.MustCompile(`\n[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*\n`)

// Paragraph is one segmented passage candidate.
type Paragraph struct {
	// Index is the position among paragraphs that passed the word filter.
	Index int
	// Text is the whitespace-trimmed paragraph.
	Text string
	// Tokens may be empty; callers drop such paragraphs before storage.
	Tokens []string
	// Section is the nearest heading label, nil when none was found.
	Section *string
}

// Segmenter splits raw text and tokenizes the resulting paragraphs.
type Segmenter struct {
	tokenizer *tokenize.Tokenizer
}

// New creates a segmenter that tokenizes with tok.
func New(tok *tokenize.Tokenizer) *Segmenter {
	return &Segmenter{tokenizer: tok}
}

// Segment returns the paragraphs of one file's raw text in order.
func (s *Segmenter) Segment(raw string) []Paragraph {
	text := NormalizeNewlines(raw)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := SplitLines(text)
	paras := SplitParagraphs(text)
	out := make([]Paragraph, 0, len(paras))
	for idx, p := range paras {
		out = append(out, Paragraph{
			Index:   idx,
			Text:    p,
			Tokens:  s.tokenizer.Tokenize(p),
			Section: DetectSection(lines, idx),
		})
	}
	return out
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SplitParagraphs splits text on blank-line boundaries, trims each piece
// and keeps only pieces with at least MinWords words.
func SplitParagraphs(text string) []string {
	pieces := blankLinePattern.Split(NormalizeNewlines(text), -1)
	paras := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(strings.Fields(p)) < MinWords {
			continue
		}
		paras = append(paras, p)
	}
	return paras
}

// SplitLines splits text at line boundaries without keeping the
// terminators. A trailing terminator does not produce an empty last line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if !isLineBoundary(r) {
			continue
		}
		lines = append(lines, text[start:i])
		start = i + len(string(r))
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// DetectSection returns the heading label for the paragraph at position
// idx. It scans lines[0..idx] in reverse for the nearest line starting with
// '#', regardless of heading level, and returns it with the leading '#'
// run and surrounding whitespace removed. The label may be empty.
//
// idx is a paragraph position, not a line number, so the scan window is
// the first idx+1 lines of the file. Long multi-line documents therefore
// see only headings near the top. Callers rely on this exact behavior.
func DetectSection(lines []string, idx int) *string {
	end := idx + 1
	if end > len(lines) {
		end = len(lines)
	}
	for i := end - 1; i >= 0; i-- {
		line := lines[i]
		if strings.HasPrefix(line, "#") {
			label := strings.TrimSpace(strings.TrimLeft(line, "#"))
			return &label
		}
	}
	return nil
}
