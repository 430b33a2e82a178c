package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Hand-off modes for the committed command.
const (
	ModePrint     = "print"
	ModeExec      = "exec"
	ModeClipboard = "clipboard"
)

// Config holds CLI configuration stored at ~/.shearch/config.
type Config struct {
	Catalogs   []string `yaml:"catalogs"`
	Strict     bool     `yaml:"strict"`
	Mode       string   `yaml:"mode"`
	Shell      string   `yaml:"shell,omitempty"`
	Watch      bool     `yaml:"watch"`
	MaxResults int      `yaml:"max_results,omitempty"`
	// ResolveTimeout bounds one computed template argument, e.g. "2s".
	ResolveTimeout time.Duration `yaml:"resolve_timeout,omitempty"`
	LogFile        string        `yaml:"log_file,omitempty"`
	LogLevel       string        `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:           ModePrint,
		MaxResults:     50,
		ResolveTimeout: 2 * time.Second,
		LogLevel:       "info",
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".shearch", "config")
}

// Load reads and parses the config file. Returns error if missing, writable
// by others, or invalid.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm&0022 != 0 {
		return nil, fmt.Errorf("config permissions too open: %04o (group/world writable)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModePrint, ModeExec, ModeClipboard:
	case "":
		c.Mode = ModePrint
	default:
		return fmt.Errorf("config mode %q: want print, exec or clipboard", c.Mode)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("config max_results must not be negative")
	}
	if c.ResolveTimeout < 0 {
		return fmt.Errorf("config resolve_timeout must not be negative")
	}
	return nil
}

// CatalogPaths returns the catalog paths with a leading ~ expanded.
func (c *Config) CatalogPaths() []string {
	home, _ := os.UserHomeDir()
	out := make([]string, 0, len(c.Catalogs))
	for _, p := range c.Catalogs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == "~" {
			p = home
		} else if strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, p[2:])
		}
		out = append(out, p)
	}
	return out
}

// Save writes the config to disk.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
