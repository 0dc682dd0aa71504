// Package errors provides structured error handling for thesisdash.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Filesystem errors (manuscript, parsers, index file)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"
	ErrCodeConfigParse   = "ERR_102_CONFIG_PARSE"

	// IO errors (200-299)
	ErrCodeManuscriptNotFound = "ERR_201_MANUSCRIPT_NOT_FOUND"
	ErrCodeFileUnreadable     = "ERR_202_FILE_UNREADABLE"
	ErrCodeParserUnavailable  = "ERR_203_PARSER_UNAVAILABLE"
	ErrCodeParseFailed        = "ERR_204_PARSE_FAILED"
	ErrCodeOutputWrite        = "ERR_205_OUTPUT_WRITE"
	ErrCodeIndexNotFound      = "ERR_206_INDEX_NOT_FOUND"
	ErrCodeIndexCorrupt       = "ERR_207_INDEX_CORRUPT"

	// Validation errors (400-499)
	ErrCodeQueryEmpty   = "ERR_401_QUERY_EMPTY"
	ErrCodeInvalidInput = "ERR_402_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_INVALID")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Per-file problems degrade the build instead of aborting it.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeOutputWrite:
		return SeverityFatal
	case ErrCodeManuscriptNotFound, ErrCodeFileUnreadable,
		ErrCodeParserUnavailable, ErrCodeParseFailed:
		return SeverityWarning
	default:
		return SeverityError
	}
}
