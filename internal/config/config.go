// Package config loads thesisdash configuration.
//
// Precedence, lowest to highest: built-in defaults, user config
// (~/.config/thesisdash/config.yaml), project config (.thesisdash.yaml in
// the project root), THESISDASH_* environment variables. Command flags are
// applied by the caller after Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// ProjectConfigName is the project configuration file name.
const ProjectConfigName = ".thesisdash.yaml"

// Config represents the complete thesisdash configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Paths   PathsConfig   `yaml:"paths" json:"paths"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PathsConfig locates the manuscript, the index file and the served tree.
// Relative paths resolve against the project root.
type PathsConfig struct {
	Manuscript string `yaml:"manuscript" json:"manuscript"`
	Output     string `yaml:"output" json:"output"`
	ServeRoot  string `yaml:"serve_root" json:"serve_root"`
}

// IndexConfig configures the index build.
type IndexConfig struct {
	// Docx enables the .docx parser. Nil means enabled.
	Docx *bool `yaml:"docx,omitempty" json:"docx,omitempty"`

	// ExtraStopwords extend the built-in stopword list.
	ExtraStopwords []string `yaml:"extra_stopwords,omitempty" json:"extra_stopwords,omitempty"`
}

// ServerConfig configures the static dashboard server.
type ServerConfig struct {
	Host         string            `yaml:"host" json:"host"`
	Port         int               `yaml:"port" json:"port"`
	Landing      string            `yaml:"landing" json:"landing"`
	AllowOrigin  string            `yaml:"allow_origin" json:"allow_origin"`
	CacheControl string            `yaml:"cache_control" json:"cache_control"`
	MIMETypes    map[string]string `yaml:"mime_types" json:"mime_types"`
}

// WatchConfig configures rebuild-on-change.
type WatchConfig struct {
	// Debounce is a duration string, e.g. "500ms".
	Debounce string `yaml:"debounce" json:"debounce"`
}

// LoggingConfig configures console logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultMIMETypes maps extensions to the content types the dashboard needs.
func DefaultMIMETypes() map[string]string {
	return map[string]string{
		".html": "text/html; charset=UTF-8",
		".css":  "text/css; charset=UTF-8",
		".js":   "application/javascript; charset=UTF-8",
		".json": "application/json; charset=UTF-8",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".svg":  "image/svg+xml",
	}
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Manuscript: "manuscript",
			Output:     filepath.Join("dashboard", "thesis_index.json"),
			ServeRoot:  ".",
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8000,
			Landing:      "/dashboard/",
			AllowOrigin:  "*",
			CacheControl: "no-store, no-cache, must-revalidate",
			MIMETypes:    DefaultMIMETypes(),
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DocxEnabled reports whether the .docx parser should be registered.
func (c *Config) DocxEnabled() bool {
	return c.Index.Docx == nil || *c.Index.Docx
}

// DebounceDuration parses Watch.Debounce. Validate guarantees it parses.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// Resolve returns p relative to root unless it is already absolute.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// GetUserConfigPath returns the user-level config path, honoring XDG_CONFIG_HOME.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "thesisdash", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "thesisdash", "config.yaml")
	}
	return filepath.Join(home, ".config", "thesisdash", "config.yaml")
}

func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration for the project rooted at dir.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile loads .thesisdash.yaml, falling back to .thesisdash.yml.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{ProjectConfigName, ".thesisdash.yml"} {
		path := filepath.Join(dir, name)
		if !fileExists(path) {
			continue
		}
		var parsed Config
		if err := readYAML(path, &parsed); err != nil {
			return err
		}
		c.mergeWith(&parsed)
		return nil
	}
	return nil
}

func readYAML(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigParse, fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.New(errors.ErrCodeConfigParse, fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.Manuscript != "" {
		c.Paths.Manuscript = other.Paths.Manuscript
	}
	if other.Paths.Output != "" {
		c.Paths.Output = other.Paths.Output
	}
	if other.Paths.ServeRoot != "" {
		c.Paths.ServeRoot = other.Paths.ServeRoot
	}

	if other.Index.Docx != nil {
		v := *other.Index.Docx
		c.Index.Docx = &v
	}
	if len(other.Index.ExtraStopwords) > 0 {
		c.Index.ExtraStopwords = append(c.Index.ExtraStopwords, other.Index.ExtraStopwords...)
	}

	if other.Server.Host != "" {
		c.Server.Host = other.Server.Host
	}
	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}
	if other.Server.Landing != "" {
		c.Server.Landing = other.Server.Landing
	}
	if other.Server.AllowOrigin != "" {
		c.Server.AllowOrigin = other.Server.AllowOrigin
	}
	if other.Server.CacheControl != "" {
		c.Server.CacheControl = other.Server.CacheControl
	}
	// MIME overrides add to the defaults rather than replace them
	for ext, ct := range other.Server.MIMETypes {
		if c.Server.MIMETypes == nil {
			c.Server.MIMETypes = make(map[string]string)
		}
		c.Server.MIMETypes[strings.ToLower(ext)] = ct
	}

	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies THESISDASH_* variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("THESISDASH_MANUSCRIPT"); v != "" {
		c.Paths.Manuscript = v
	}
	if v := os.Getenv("THESISDASH_OUTPUT"); v != "" {
		c.Paths.Output = v
	}
	if v := os.Getenv("THESISDASH_SERVE_ROOT"); v != "" {
		c.Paths.ServeRoot = v
	}
	if v := os.Getenv("THESISDASH_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("THESISDASH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("THESISDASH_PORT must be an integer, got %q", v), err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("THESISDASH_DOCX"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("THESISDASH_DOCX must be a boolean, got %q", v), err)
		}
		c.Index.Docx = &enabled
	}
	if v := os.Getenv("THESISDASH_DEBOUNCE"); v != "" {
		c.Watch.Debounce = v
	}
	if v := os.Getenv("THESISDASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf(format, args...), nil)
	}

	if c.Paths.Output == "" {
		return invalid("paths.output must not be empty")
	}
	if c.Paths.Manuscript == "" {
		return invalid("paths.manuscript must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Landing != "" && !strings.HasPrefix(c.Server.Landing, "/") {
		return invalid("server.landing must start with '/', got %s", c.Server.Landing)
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return invalid("watch.debounce must be a positive duration, got %q", c.Watch.Debounce)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return invalid("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// FindProjectRoot walks up from startDir looking for .git or a project
// config file. Returns startDir (absolute) if neither is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}
		if fileExists(filepath.Join(currentDir, ProjectConfigName)) ||
			fileExists(filepath.Join(currentDir, ".thesisdash.yml")) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
