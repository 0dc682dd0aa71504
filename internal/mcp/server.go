package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/search"
	"github.com/Aman-CERP/thesisdash/pkg/version"
)

// Tool limits.
const (
	DefaultLimit = search.DefaultLimit
	MaxLimit     = 50
)

// Server answers thesis questions for MCP clients.
type Server struct {
	mcp    *mcp.Server
	index  *search.IndexFile
	logger *slog.Logger
}

// AskInput is the input schema of ask_thesis.
type AskInput struct {
	Query string `json:"query" jsonschema:"question or keywords to look up in the thesis"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages, default 5"`
}

// AskOutput is the structured output of ask_thesis.
type AskOutput struct {
	Results []search.Result `json:"results" jsonschema:"ranked passages, best first"`
}

// IndexStatusInput is the (empty) input schema of index_status.
type IndexStatusInput struct{}

// IndexStatusOutput describes the index file.
type IndexStatusOutput struct {
	Path          string   `json:"path" jsonschema:"index file path"`
	Ready         bool     `json:"ready" jsonschema:"true when the index file could be loaded"`
	Message       string   `json:"message,omitempty" jsonschema:"why the index is not ready"`
	TotalPassages int      `json:"total_passages" jsonschema:"number of passages"`
	Terms         int      `json:"terms" jsonschema:"number of distinct terms"`
	Stopwords     int      `json:"stopwords" jsonschema:"size of the stopword set used"`
	SourceFiles   []string `json:"source_files" jsonschema:"manuscript files that contributed passages"`
	BuiltAt       string   `json:"built_at,omitempty" jsonschema:"build time, RFC 3339"`
}

// NewServer creates an MCP server over the given index file.
func NewServer(file *search.IndexFile, logger *slog.Logger) (*Server, error) {
	if file == nil {
		return nil, stderrors.New("index file is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{index: file, logger: logger}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "thesisdash",
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "ask_thesis",
		Description: "Find the thesis passages most relevant to a question. Returns ranked paragraphs with their source file and section heading.",
	}, s.askHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_status",
		Description: "Report whether the thesis index exists, when it was built and how many passages it holds.",
	}, s.indexStatusHandler)

	s.logger.Debug("mcp_tools_registered", slog.Int("count", 2))
}

func (s *Server) askHandler(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (
	*mcp.CallToolResult,
	AskOutput,
	error,
) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, AskOutput{}, NewInvalidParamsError("query parameter is required")
	}

	searcher, err := s.index.Searcher()
	if err != nil {
		return nil, AskOutput{}, MapError(err)
	}

	start := time.Now()
	results, err := searcher.Search(ctx, query, clampLimit(input.Limit, DefaultLimit, 1, MaxLimit))
	if err != nil {
		return nil, AskOutput{}, MapError(err)
	}
	s.logger.Info("mcp_ask",
		slog.Int("results", len(results)),
		slog.Duration("latency", time.Since(start)))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatResults(query, results)}},
	}, AskOutput{Results: results}, nil
}

func (s *Server) indexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	out := IndexStatusOutput{Path: s.index.Path(), SourceFiles: []string{}}

	searcher, err := s.index.Searcher()
	if err != nil {
		out.Message = MapError(err).Message
		return nil, out, nil
	}

	idx := searcher.Index()
	out.Ready = true
	out.TotalPassages = idx.Meta.TotalPassages
	out.Terms = len(idx.IDF)
	out.Stopwords = idx.Meta.Stopwords
	out.SourceFiles = append(out.SourceFiles, idx.Meta.SourceFiles...)
	out.BuiltAt = idx.Meta.BuiltAt.Format(time.RFC3339)
	return nil, out, nil
}

// Serve runs the server on stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp_server_started",
		slog.String("transport", "stdio"),
		slog.String("index", s.index.Path()))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !stderrors.Is(err, context.Canceled) {
		s.logger.Error("mcp_server_stopped", errors.FormatForLog(err)...)
		return fmt.Errorf("mcp server: %w", err)
	}
	s.logger.Info("mcp_server_stopped")
	return nil
}
