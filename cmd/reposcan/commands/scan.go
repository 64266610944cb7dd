package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Berachem/reposcan/internal/config"
	"github.com/Berachem/reposcan/internal/logging"
	"github.com/Berachem/reposcan/internal/output"
	"github.com/Berachem/reposcan/internal/scanner"
	"github.com/Berachem/reposcan/internal/types"
)

var (
	flagRepo        string
	flagOllamaURL   string
	flagModel       string
	flagMaxFileSize int64
	flagTimeout     int
	flagNoAI        bool
	flagFailOn      string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory or remote repository for security issues",
	Args: func(cmd *cobra.Command, args []string) error {
		if flagRepo != "" {
			if len(args) > 0 {
				return fmt.Errorf("--repo does not accept path arguments")
			}
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagRepo, "repo", "", "Git repository URL to clone and scan")
	scanCmd.Flags().StringVar(&flagOllamaURL, "ollama-url", "", "External analyzer endpoint (default: http://localhost:11434)")
	scanCmd.Flags().StringVar(&flagModel, "model", "", "Model identifier for the external analyzer")
	scanCmd.Flags().Int64Var(&flagMaxFileSize, "max-file-size", 0, "Per-file size ceiling in bytes")
	scanCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-call analyzer timeout in seconds")
	scanCmd.Flags().BoolVar(&flagNoAI, "no-ai", false, "Disable the external analyzer layer")
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit non-zero if findings at or above this severity exist (critical, high, medium, low)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := validateFailOn(flagFailOn); err != nil {
		return err
	}

	target := flagRepo
	if target == "" {
		target = args[0]
	}

	cfg, err := loadScanConfig(target)
	if err != nil {
		return err
	}

	s, err := buildScanner(cfg)
	if err != nil {
		return err
	}
	s.SetLogger(logging.New(flagVerbose))

	// The spinner only makes sense on a terminal writing human output.
	var sp *output.Spinner
	if flagFormat == "terminal" && flagOutput == "" {
		sp = output.NewSpinner(os.Stderr)
		sp.Start("starting scan")
		defer sp.Stop()
		s.SetProgressReporter(output.NewSpinnerReporter(sp))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var rep *types.ScanReport
	if flagRepo != "" {
		rep, err = s.ScanRepo(ctx, flagRepo)
	} else {
		rep, err = s.Scan(ctx, args[0])
	}
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	if err := writeReport(rep); err != nil {
		return err
	}
	return checkFailOn(rep)
}

// loadScanConfig overlays .reposcan.yml from the target directory, then
// applies command-line flags on top.
func loadScanConfig(target string) (config.Config, error) {
	dir := target
	if flagRepo != "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return cfg, err
	}
	if flagOllamaURL != "" {
		cfg.OllamaURL = flagOllamaURL
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagMaxFileSize > 0 {
		cfg.MaxFileSize = flagMaxFileSize
	}
	if flagTimeout > 0 {
		cfg.AnalyzerTimeout = time.Duration(flagTimeout) * time.Second
	}
	if flagRules != "" {
		cfg.RulesDir = flagRules
	}
	return cfg, nil
}

func buildScanner(cfg config.Config) (*scanner.Scanner, error) {
	if flagNoAI {
		return scanner.NewWithClient(cfg, nil)
	}
	return scanner.New(cfg)
}

func writeReport(rep *types.ScanReport) error {
	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var formatter output.Formatter
	switch flagFormat {
	case "json":
		formatter = &output.JSONFormatter{}
	case "terminal":
		formatter = &output.TerminalFormatter{NoColor: flagNoColor, Verbose: flagVerbose}
	default:
		return fmt.Errorf("unknown format %q (expected terminal or json)", flagFormat)
	}
	return formatter.Format(w, rep)
}

// validateFailOn rejects threshold values outside the severity
// vocabulary before any scanning happens.
func validateFailOn(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "critical", "high", "medium", "low":
		return nil
	default:
		return fmt.Errorf("invalid --fail-on value %q (expected critical, high, medium, or low)", value)
	}
}

// checkFailOn exits non-zero when findings at or above the threshold
// severity exist, for CI use.
func checkFailOn(rep *types.ScanReport) error {
	if flagFailOn == "" {
		return nil
	}
	threshold := types.ParseSeverity(flagFailOn)
	for _, f := range rep.Findings {
		if f.Severity >= threshold {
			return fmt.Errorf("findings at or above %s severity", threshold)
		}
	}
	return nil
}
