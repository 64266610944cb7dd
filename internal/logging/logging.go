// Package logging builds the zap logger used by the CLI.
package logging

import (
	"go.uber.org/zap"
)

// New returns a configured SugaredLogger. In verbose mode it logs at
// debug level with the development console encoder; otherwise only
// warnings and errors are emitted.
func New(verbose bool) *zap.SugaredLogger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		// Construction only fails on invalid static config.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
