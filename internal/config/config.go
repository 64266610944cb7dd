// Package config defines the scanner configuration as an explicit struct
// with declared defaults, optionally overlaid from a .reposcan.yml file.
// There is no ambient (environment/global) lookup; whoever constructs a
// scanner passes a Config in.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every recognized scanner option.
type Config struct {
	// OllamaURL is the external analyzer endpoint.
	OllamaURL string
	// Model is the model identifier passed to the analyzer.
	Model string
	// MaxFileSize is the per-file size ceiling in bytes; larger files
	// are reported as oversized and skipped entirely.
	MaxFileSize int64
	// MaxConcurrentScans is reserved: the core scans sequentially so the
	// rate-limited analyzer never sees overlapping calls.
	MaxConcurrentScans int
	// Extensions is the source-file extension allow-list.
	Extensions []string
	// RulesDir optionally points at a directory of additional rule
	// YAML files, loaded after the built-in catalog.
	RulesDir string
	// AnalyzerTimeout bounds each external analyzer call.
	AnalyzerTimeout time.Duration
	// CloneTimeout bounds the git clone of a remote repository.
	CloneTimeout time.Duration
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		OllamaURL:          "http://localhost:11434",
		Model:              "deepseek-r1:14b",
		MaxFileSize:        1 << 20,
		MaxConcurrentScans: 2,
		Extensions:         []string{".py", ".js", ".java", ".php", ".rb", ".go", ".cpp", ".c", ".cs"},
		AnalyzerTimeout:    60 * time.Second,
		CloneTimeout:       2 * time.Minute,
	}
}

// fileConfig is the YAML shape of .reposcan.yml. Pointer fields tell an
// absent key from an explicit zero.
type fileConfig struct {
	OllamaURL              *string  `yaml:"ollama_url"`
	Model                  *string  `yaml:"model"`
	MaxFileSize            *int64   `yaml:"max_file_size"`
	MaxConcurrentScans     *int     `yaml:"max_concurrent_scans"`
	Extensions             []string `yaml:"extensions"`
	RulesDir               *string  `yaml:"rules_dir"`
	AnalyzerTimeoutSeconds *int     `yaml:"analyzer_timeout_seconds"`
	CloneTimeoutSeconds    *int     `yaml:"clone_timeout_seconds"`
}

// maxConfigFileSize guards against absurd config files (1 MB).
const maxConfigFileSize = 1 << 20

// Load returns Default overlaid with the .reposcan.yml or .reposcan.yaml
// found in dir, if any. A missing config file is not an error. If dir is
// a file, its parent directory is searched.
func Load(dir string) (Config, error) {
	cfg := Default()

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for _, name := range []string{".reposcan.yml", ".reposcan.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > maxConfigFileSize {
			return cfg, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
		apply(&cfg, fc)
		return cfg, nil
	}
	return cfg, nil
}

func apply(cfg *Config, fc fileConfig) {
	if fc.OllamaURL != nil {
		cfg.OllamaURL = *fc.OllamaURL
	}
	if fc.Model != nil {
		cfg.Model = *fc.Model
	}
	if fc.MaxFileSize != nil {
		cfg.MaxFileSize = *fc.MaxFileSize
	}
	if fc.MaxConcurrentScans != nil {
		cfg.MaxConcurrentScans = *fc.MaxConcurrentScans
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	if fc.RulesDir != nil {
		cfg.RulesDir = *fc.RulesDir
	}
	if fc.AnalyzerTimeoutSeconds != nil {
		cfg.AnalyzerTimeout = time.Duration(*fc.AnalyzerTimeoutSeconds) * time.Second
	}
	if fc.CloneTimeoutSeconds != nil {
		cfg.CloneTimeout = time.Duration(*fc.CloneTimeoutSeconds) * time.Second
	}
}
