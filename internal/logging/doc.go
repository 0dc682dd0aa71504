// Package logging configures slog for thesisdash.
//
// Console logs go to stderr as text. With --debug, JSON logs are also
// written to ~/.thesisdash/logs/thesisdash.log with size-based rotation.
// The MCP command logs to the file only, since stdout carries JSON-RPC.
package logging
