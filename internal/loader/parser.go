package loader

import (
	"context"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DocumentParser turns file bytes into raw text.
// A loader only reads files whose extension has a registered parser.
type DocumentParser interface {
	// Extensions returns the lower-case extensions handled, with leading dot.
	Extensions() []string
	// Parse extracts raw text from content. name is the file's base name.
	Parse(ctx context.Context, name string, content []byte) (string, error)
}

// TextParser decodes plain-text and markdown files.
//
// A byte-order mark selects UTF-8 or UTF-16 decoding and is dropped.
// Invalid byte sequences become U+FFFD instead of failing the file.
type TextParser struct{}

// NewTextParser creates a plain text parser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Extensions returns the extensions handled by TextParser.
func (p *TextParser) Extensions() []string {
	return []string{".md", ".txt"}
}

// Parse decodes content as text.
func (p *TextParser) Parse(_ context.Context, _ string, content []byte) (string, error) {
	return DecodeText(content)
}

// DecodeText decodes bytes as UTF-8 (or BOM-marked UTF-16), replacing
// ill-formed sequences.
func DecodeText(content []byte) (string, error) {
	t := transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		runes.ReplaceIllFormed(),
	)
	out, _, err := transform.Bytes(t, content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// splitExt splits a file name into stem and lower-cased suffix. A name
// whose only dot is the first character, or ends with a dot, has no suffix.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], strings.ToLower(name[i:])
}
