package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Berachem/reposcan"
)

var explainCmd = &cobra.Command{
	Use:   "explain <kind>",
	Short: "Show details for one detection rule kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	var opts []reposcan.Option
	if flagRules != "" {
		opts = append(opts, reposcan.WithRulesDir(flagRules))
	}
	detail, err := reposcan.ExplainRule(args[0], opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}

	fmt.Fprintf(w, "Kind:           %s\n", detail.Kind)
	fmt.Fprintf(w, "Severity:       %s\n", detail.Severity)
	fmt.Fprintf(w, "Description:    %s\n", detail.Description)
	fmt.Fprintf(w, "Recommendation: %s\n", detail.Recommendation)
	fmt.Fprintln(w, "Patterns:")
	for _, p := range detail.Patterns {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	return nil
}
