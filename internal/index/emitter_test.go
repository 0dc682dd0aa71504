package index

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

func sampleIndex() *Index {
	section := "Résumé & <Notes>"
	return &Index{
		Meta: Meta{
			TotalPassages: 1,
			BuiltAt:       time.Date(2026, 10, 19, 8, 30, 0, 123, time.UTC),
			SourceFiles:   []string{"intro.md"},
			Stopwords:     47,
		},
		Documents: []Passage{{
			ID:      "intro::0",
			File:    "intro.md",
			Section: &section,
			Text:    "Delirium affects older adults",
			Tokens:  []string{"delirium", "affects", "older", "adults"},
			TF:      map[string]float64{"delirium": 0.25, "affects": 0.25, "older": 0.25, "adults": 0.25},
			Norm:    0.5,
		}},
		IDF: map[string]float64{"delirium": 1.0, "affects": 1.0, "older": 1.0, "adults": 1.0},
	}
}

func TestEncode_Shape(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, sampleIndex()))

	out := buf.String()
	assert.Contains(t, out, `"built_at": "2026-10-19T08:30:00.000000123Z"`)
	assert.Contains(t, out, `"section": "Résumé & <Notes>"`)
	assert.Contains(t, out, "\n  \"documents\": [\n")
	// map keys are sorted
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"adults": 0.25`)), bytes.Index(buf.Bytes(), []byte(`"delirium": 0.25`)))
}

func TestEncode_NullSection(t *testing.T) {
	idx := sampleIndex()
	idx.Documents[0].Section = nil
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, idx))

	assert.Contains(t, buf.String(), `"section": null`)
}

func TestEncode_PreservesFloatPrecision(t *testing.T) {
	idx := sampleIndex()
	idx.IDF["delirium"] = IDF(1, 10)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, idx))

	path := filepath.Join(t.TempDir(), "i.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	back, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, IDF(1, 10), back.IDF["delirium"])
}

func TestWrite_CreatesDirectoriesAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dashboard")
	path := filepath.Join(dir, "thesis_index.json")

	require.NoError(t, Write(path, sampleIndex()))
	require.NoError(t, Write(path, sampleIndex()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "thesis_index.json", entries[0].Name())
}

func TestWrite_OverwritesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis_index.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100000), 0o644))

	require.NoError(t, Write(path, Empty(time.Now(), 47)))

	idx, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Meta.TotalPassages)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.Equal(t, errors.ErrCodeIndexNotFound, errors.GetCode(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Read(bad)
	assert.Equal(t, errors.ErrCodeIndexCorrupt, errors.GetCode(err))
}

func TestRead_NormalizesMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"meta":{"total_passages":0}}`), 0o644))

	idx, err := Read(path)

	require.NoError(t, err)
	assert.NotNil(t, idx.Documents)
	assert.NotNil(t, idx.IDF)
}
