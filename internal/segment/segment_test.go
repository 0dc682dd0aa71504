package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

func TestSplitParagraphs_BlankLineBoundaries(t *testing.T) {
	text := "First paragraph has enough words here.\n\n\n  \nSecond paragraph also has enough words.\r\n\r\nThird one is fine as well today."

	paras := SplitParagraphs(text)

	require.Len(t, paras, 3)
	assert.Equal(t, "First paragraph has enough words here.", paras[0])
	assert.Equal(t, "Second paragraph also has enough words.", paras[1])
	assert.Equal(t, "Third one is fine as well today.", paras[2])
}

func TestSplitParagraphs_DropsShortParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "four words dropped", input: "one two three four", want: 0},
		{name: "five words kept", input: "one two three four five", want: 1},
		{name: "heading alone dropped", input: "# Methods\n\nWe recruited patients from three centres.", want: 1},
		{name: "whitespace only", input: " \n\n \t ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, SplitParagraphs(tt.input), tt.want)
		})
	}
}

func TestSplitParagraphs_SingleNewlineKeepsParagraphTogether(t *testing.T) {
	paras := SplitParagraphs("line one of the paragraph\nline two of the paragraph")

	require.Len(t, paras, 1)
	assert.Equal(t, "line one of the paragraph\nline two of the paragraph", paras[0])
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\u2028b"))
	assert.Nil(t, SplitLines(""))
}

func TestDetectSection(t *testing.T) {
	lines := []string{"# Introduction", "Some text", "## Background", "More text", "  # indented"}

	tests := []struct {
		name string
		idx  int
		want *string
	}{
		{name: "first line heading", idx: 0, want: strPtr("Introduction")},
		{name: "nearest heading wins", idx: 2, want: strPtr("Background")},
		{name: "indented hash is not a heading", idx: 4, want: strPtr("Background")},
		{name: "index beyond lines clamps", idx: 99, want: strPtr("Background")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSection(lines, tt.idx))
		})
	}
}

func TestDetectSection_NoHeading(t *testing.T) {
	assert.Nil(t, DetectSection([]string{"plain", "text"}, 1))
	assert.Nil(t, DetectSection(nil, 0))
}

func TestDetectSection_BareHashesGiveEmptyLabel(t *testing.T) {
	got := DetectSection([]string{"###"}, 0)

	require.NotNil(t, got)
	assert.Equal(t, "", *got)
}

func TestDetectSection_UsesParagraphIndexAsLineWindow(t *testing.T) {
	// Given: a heading on line 3 and a paragraph at position 1
	lines := []string{"Opening words of the chapter", "", "# Late Heading", "body"}

	// Then: the window is lines[0..1], so the late heading is not seen
	assert.Nil(t, DetectSection(lines, 1))
	assert.Equal(t, strPtr("Late Heading"), DetectSection(lines, 2))
}

func TestSegmenter_Segment(t *testing.T) {
	seg := New(tokenize.New())
	raw := "# Chapter One\n\nThe cohort included adult patients admitted overnight.\n\nTiny caption here\n\nIt is what it is and so on."

	paras := seg.Segment(raw)

	// "Tiny caption here" is filtered before indices are assigned.
	require.Len(t, paras, 2)
	assert.Equal(t, 0, paras[0].Index)
	assert.Equal(t, "The cohort included adult patients admitted overnight.", paras[0].Text)
	assert.Equal(t, []string{"cohort", "included", "adult", "patients", "admitted", "overnight"}, paras[0].Tokens)
	assert.Equal(t, strPtr("Chapter One"), paras[0].Section)

	assert.Equal(t, 1, paras[1].Index)
	assert.Equal(t, []string{"what"}, paras[1].Tokens)
}

func TestSegmenter_Segment_BlankInput(t *testing.T) {
	assert.Empty(t, New(tokenize.New()).Segment("  \r\n\t"))
}

func strPtr(s string) *string { return &s }
