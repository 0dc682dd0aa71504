package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()

	if filepath.Base(path) != "thesisdash.log" {
		t.Errorf("DefaultLogPath should end with thesisdash.log, got: %s", path)
	}
	if !strings.Contains(path, ".thesisdash") {
		t.Errorf("DefaultLogPath should live under .thesisdash, got: %s", path)
	}
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()

	if cfg.Level != "debug" {
		t.Errorf("expected level 'debug', got: %s", cfg.Level)
	}
	if cfg.FilePath == "" {
		t.Error("expected a log file path")
	}
	if !cfg.WriteToStderr {
		t.Error("expected WriteToStderr to be true")
	}
}

func TestMCPConfig_NeverWritesToStderr(t *testing.T) {
	cfg := MCPConfig("info")

	if cfg.WriteToStderr {
		t.Error("MCP mode must not write to stderr")
	}
	if cfg.FilePath == "" {
		t.Error("MCP mode must log to a file")
	}
}

func TestSetup_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := ConsoleConfig("warn")
	cfg.Stderr = &buf

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("manuscript_file_skipped", slog.String("file", "a.docx"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "file=a.docx") {
		t.Errorf("expected text warn record, got: %s", out)
	}
}

func TestSetup_FileAndConsole(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, cleanup, err := Setup(Config{
		Level:         "debug",
		FilePath:      logPath,
		MaxSizeMB:     1,
		MaxFiles:      3,
		WriteToStderr: true,
		Stderr:        &buf,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.With(slog.String("component", "index")).Debug("index_written", slog.Int("passages", 3))
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("file log is not JSON: %v (%s)", err, data)
	}
	if entry["msg"] != "index_written" || entry["component"] != "index" {
		t.Errorf("unexpected file entry: %v", entry)
	}
	if !strings.Contains(buf.String(), "passages=3") {
		t.Errorf("console handler missed the record: %s", buf.String())
	}
}

func TestSetup_NoSinks(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "info"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Info("discarded")
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.expected {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindLogFile_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")

	if _, err := FindLogFile(path); err == nil {
		t.Error("expected error for missing explicit file")
	}

	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindLogFile(path)
	if err != nil || got != path {
		t.Errorf("FindLogFile(%q) = %q, %v", path, got, err)
	}
}

func TestNewFileWriter_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "thesisdash.log")

	w, err := newFileWriter(Config{FilePath: path})
	if err != nil {
		t.Fatalf("newFileWriter failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	if w.MaxSize != defaultMaxSizeMB || w.MaxBackups != defaultMaxFiles {
		t.Errorf("expected defaults %d/%d, got %d/%d", defaultMaxSizeMB, defaultMaxFiles, w.MaxSize, w.MaxBackups)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestNewFileWriter_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thesisdash.log")

	w, err := newFileWriter(Config{FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("newFileWriter failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	for i := 0; i < 2; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	backups, err := filepath.Glob(filepath.Join(dir, "thesisdash-*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) == 0 {
		t.Error("expected a rotated backup after exceeding MaxSizeMB")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("current log missing: %v", err)
	}
	if info.Size() != int64(len(chunk)) {
		t.Errorf("current log should hold only the last write, got %d bytes", info.Size())
	}
}

func TestSetup_UnwritableLogDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Setup(Config{FilePath: filepath.Join(blocker, "logs", "x.log")})
	if err == nil {
		t.Error("expected error when the log directory cannot be created")
	}
}
