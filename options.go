package reposcan

import (
	"time"

	"github.com/Berachem/reposcan/internal/config"
	"github.com/Berachem/reposcan/internal/progress"
	"go.uber.org/zap"
)

// scanConfig holds the resolved configuration for a scan.
type scanConfig struct {
	cfg         config.Config
	client      AnalyzerClient
	analyzerOff bool
	reporter    progress.Reporter
	logger      *zap.SugaredLogger
}

// Option configures a scan operation.
type Option func(*scanConfig)

func applyOpts(opts []Option) *scanConfig {
	sc := &scanConfig{cfg: config.Default()}
	for _, o := range opts {
		o(sc)
	}
	return sc
}

// WithConfig replaces the entire default configuration.
func WithConfig(cfg Config) Option {
	return func(c *scanConfig) {
		c.cfg = cfg
	}
}

// WithMaxFileSize sets the per-file size ceiling in bytes.
func WithMaxFileSize(n int64) Option {
	return func(c *scanConfig) {
		c.cfg.MaxFileSize = n
	}
}

// WithRulesDir loads additional rule YAML files from a directory,
// appended after the built-in catalog.
func WithRulesDir(dir string) Option {
	return func(c *scanConfig) {
		c.cfg.RulesDir = dir
	}
}

// WithExtensions replaces the source-file extension allow-list.
func WithExtensions(exts ...string) Option {
	return func(c *scanConfig) {
		c.cfg.Extensions = exts
	}
}

// WithOllamaURL sets the external analyzer endpoint.
func WithOllamaURL(url string) Option {
	return func(c *scanConfig) {
		c.cfg.OllamaURL = url
	}
}

// WithModel sets the model identifier used by the external analyzer.
func WithModel(model string) Option {
	return func(c *scanConfig) {
		c.cfg.Model = model
	}
}

// WithAnalyzerTimeout bounds each external analyzer call.
func WithAnalyzerTimeout(d time.Duration) Option {
	return func(c *scanConfig) {
		c.cfg.AnalyzerTimeout = d
	}
}

// WithAnalyzerClient plugs in a custom analyzer backend in place of the
// default Ollama client.
func WithAnalyzerClient(client AnalyzerClient) Option {
	return func(c *scanConfig) {
		c.client = client
	}
}

// WithoutAnalyzer disables the external analyzer layer; only the rule
// engine and dependency audit run.
func WithoutAnalyzer() Option {
	return func(c *scanConfig) {
		c.analyzerOff = true
	}
}

// WithProgress installs a callback receiving progress events. Events
// are delivered synchronously on the scanning goroutine.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(c *scanConfig) {
		c.reporter = progress.Func(fn)
	}
}

// WithLogger installs a logger on the scanner and its stages.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *scanConfig) {
		c.logger = log
	}
}
