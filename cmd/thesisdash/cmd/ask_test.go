package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/search"
)

func TestAskCmd(t *testing.T) {
	// Given: a built index
	dir := setupProject(t)
	writeChapter(t, dir, "ch1.md", chapterOne)
	_, _, err := runCLI(t, "index")
	require.NoError(t, err)

	t.Run("json results ranked by score", func(t *testing.T) {
		stdout, _, err := runCLI(t, "ask", "--json", "how", "were", "participants", "recruited")

		require.NoError(t, err)
		var results []search.Result
		require.NoError(t, json.Unmarshal([]byte(stdout), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "ch1::1", results[0].ID)
		assert.Equal(t, 1, results[0].Rank)
	})

	t.Run("text output names passage and section", func(t *testing.T) {
		stdout, _, err := runCLI(t, "ask", "delirium")

		require.NoError(t, err)
		assert.Contains(t, stdout, "ch1::0 · Introduction")
		assert.Contains(t, stdout, "older surgical patients")
	})

	t.Run("no match", func(t *testing.T) {
		stdout, _, err := runCLI(t, "ask", "cardiology")

		require.NoError(t, err)
		assert.Contains(t, stdout, "No passages matched")
	})

	t.Run("stopword-only query", func(t *testing.T) {
		_, _, err := runCLI(t, "ask", "it", "is", "the")

		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeQueryEmpty, errors.GetCode(err))
	})
}

func TestAskCmd_MissingIndex(t *testing.T) {
	setupProject(t)

	_, _, err := runCLI(t, "ask", "delirium")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIndexNotFound, errors.GetCode(err))
}
