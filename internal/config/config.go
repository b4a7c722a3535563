package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Modes understood by the REPL.
const (
	ModeLex   = "lex"
	ModeParse = "parse"
)

// EnvConfig names the environment variable consulted when no --config flag is given.
const EnvConfig = "MONKEY_CONFIG"

// Config holds the complete application configuration
type Config struct {
	REPL  REPLConfig  `toml:"repl" yaml:"repl"`
	Log   LogConfig   `toml:"log" yaml:"log"`
	Store StoreConfig `toml:"store" yaml:"store"`
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	Mode        string `toml:"mode" yaml:"mode"`
	Color       bool   `toml:"color" yaml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// StoreConfig holds the session journal settings
type StoreConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:      ">> ",
			HistoryFile: "~/.monkey_history",
			Mode:        ModeLex,
			Color:       true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "~/.monkey/sessions.db",
		},
	}
}

// Load reads a TOML or YAML file over the defaults. The format follows the
// file extension; anything other than .yaml/.yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set, then $MONKEY_CONFIG, and falls
// back to Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.REPL.Mode {
	case ModeLex, ModeParse:
	default:
		return fmt.Errorf("invalid repl mode %q (want %s or %s)", c.REPL.Mode, ModeLex, ModeParse)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store enabled without a path")
	}
	return nil
}

// ExpandPaths resolves a leading ~ in file paths against the home directory.
func (c *Config) ExpandPaths() error {
	var err error
	if c.REPL.HistoryFile, err = expandHome(c.REPL.HistoryFile); err != nil {
		return err
	}
	if c.Store.Path, err = expandHome(c.Store.Path); err != nil {
		return err
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
