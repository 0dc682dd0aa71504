// Package mcp exposes the thesis index to MCP clients over stdio.
package mcp

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// MCP error codes. Negative codes below -32000 are server defined.
const (
	// ErrCodeIndexNotFound indicates no index file exists yet.
	ErrCodeIndexNotFound = -32001
	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603
)

// MCPError is an error with a protocol code.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// NewInvalidParamsError creates an error for invalid tool arguments.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var de *errors.DashError
	if errors.As(err, &de) {
		return mapDashError(de)
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case stderrors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

func mapDashError(de *errors.DashError) *MCPError {
	message := de.Message
	if de.Suggestion != "" {
		message = de.Message + ". " + de.Suggestion
	}

	switch {
	case de.Code == errors.ErrCodeIndexNotFound, de.Code == errors.ErrCodeIndexCorrupt:
		return &MCPError{Code: ErrCodeIndexNotFound, Message: message}
	case de.Category == errors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
