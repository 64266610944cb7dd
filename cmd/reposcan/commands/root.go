package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagOutput  string
	flagNoColor bool
	flagVerbose bool
	flagRules   string
)

var rootCmd = &cobra.Command{
	Use:          "reposcan",
	Short:        "Security scanner for source code repositories",
	Long:         `Reposcan scans a local directory or a remote git repository for security issues: injection patterns, hardcoded secrets, weak cryptography, and vulnerable dependencies, optionally augmented by an LLM-backed analyzer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging and output")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Directory with additional rule YAML files")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
