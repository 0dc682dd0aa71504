package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/thesisdash/internal/search"
)

// FormatResults renders ranked passages as markdown for the model.
func FormatResults(query string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No passages found for \"%s\"", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Thesis passages for \"%s\"\n\n", query)
	fmt.Fprintf(&sb, "Found %d passage", len(results))
	if len(results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for _, r := range results {
		fmt.Fprintf(&sb, "### %d. %s (score: %.3f)\n", r.Rank, r.ID, r.Score)
		if r.Section != nil && *r.Section != "" {
			fmt.Fprintf(&sb, "**Section:** %s\n", *r.Section)
		}
		fmt.Fprintf(&sb, "**File:** %s\n\n", r.File)
		sb.WriteString(r.Text)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}

// clampLimit ensures limit is within bounds.
func clampLimit(limit, defaultVal, min, max int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
