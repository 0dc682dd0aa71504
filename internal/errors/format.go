package errors

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	var de *DashError
	if !As(err, &de) {
		de = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", de.Message))
	if de.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", de.Suggestion))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", de.Code))

	return sb.String()
}

// FormatForLog returns slog key-value arguments describing err.
//
//	slog.Warn("manuscript_file_skipped", errors.FormatForLog(err)...)
func FormatForLog(err error) []any {
	if err == nil {
		return nil
	}

	var de *DashError
	if !As(err, &de) {
		return []any{slog.String("error", err.Error())}
	}

	args := []any{
		slog.String("error_code", de.Code),
		slog.String("message", de.Message),
		slog.String("severity", string(de.Severity)),
	}
	if de.Cause != nil {
		args = append(args, slog.String("cause", de.Cause.Error()))
	}
	if de.Suggestion != "" {
		args = append(args, slog.String("suggestion", de.Suggestion))
	}

	keys := make([]string, 0, len(de.Details))
	for k := range de.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, slog.String(k, de.Details[k]))
	}

	return args
}
