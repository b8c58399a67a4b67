// Package config loads and saves the .reqwise.yaml configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/reqwise/reqwise/internal/core"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".reqwise.yaml"

// ConfigFilePerm is the permission used when writing the config file.
const ConfigFilePerm = os.FileMode(0644)

// Config is the main configuration structure for reqwise.
type Config struct {
	// Manifest is the path to the requirements file.
	Manifest string `yaml:"manifest"`

	// IndexURL is the package index base URL.
	IndexURL string `yaml:"index_url,omitempty"`

	// Policy decides what happens to invalid packages: comment, drop, keep.
	Policy string `yaml:"policy,omitempty"`

	// Denylist holds reserved package names never written to the manifest.
	Denylist []string `yaml:"denylist,omitempty"`

	// Packages lists names that require a version specifier.
	Packages []string `yaml:"packages,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Manifest: "requirements.txt",
		Policy:   "comment",
	}
}

// Load reads configuration with the following precedence: the
// REQWISE_MANIFEST environment variable, then .reqwise.yaml, then
// defaults. A nil-safe *Config is always returned on success.
func Load() (*Config, error) {
	if envPath := os.Getenv("REQWISE_MANIFEST"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid REQWISE_MANIFEST: path traversal not allowed, use an absolute path")
		}
		cfg := Default()
		cfg.Manifest = cleanPath
		return cfg, nil
	}

	data, err := os.ReadFile(DefaultConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	return parse(data)
}

// parse decodes YAML content strictly and applies defaults.
func parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
	}

	if cfg.Manifest == "" {
		cfg.Manifest = "requirements.txt"
	}
	if cfg.Policy == "" {
		cfg.Policy = "comment"
	}
	return &cfg, nil
}

// Validate checks the configuration for values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Policy {
	case "comment", "drop", "keep":
	default:
		return fmt.Errorf("invalid policy %q: must be comment, drop, or keep", c.Policy)
	}
	if c.IndexURL != "" && !strings.HasPrefix(c.IndexURL, "http://") && !strings.HasPrefix(c.IndexURL, "https://") {
		return fmt.Errorf("invalid index_url %q: must be an http(s) URL", c.IndexURL)
	}
	return nil
}

// FlaggedSet returns Packages as a set for the editor.
func (c *Config) FlaggedSet() map[string]bool {
	set := make(map[string]bool, len(c.Packages))
	for _, p := range c.Packages {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = true
		}
	}
	return set
}

// yamlMarshaler is the production core.Marshaler using YAML.
type yamlMarshaler struct{}

func (yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// FileOpener abstracts file opening for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

type osFileOpener struct{}

func (osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// Saver persists configuration with injected dependencies.
type Saver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// NewSaver creates a Saver; nil dependencies fall back to production
// defaults.
func NewSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *Saver {
	if marshaler == nil {
		marshaler = yamlMarshaler{}
	}
	if opener == nil {
		opener = osFileOpener{}
	}
	if writer == nil {
		writer = osFileWriter{}
	}
	return &Saver{marshaler: marshaler, fileOpener: opener, fileWriter: writer}
}

// Save writes cfg to the default config file.
func (s *Saver) Save(cfg *Config) error {
	return s.SaveTo(cfg, DefaultConfigFile)
}

// SaveTo writes cfg to the given path.
func (s *Saver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}
	return nil
}
