package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Berachem/reposcan"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	var opts []reposcan.Option
	if flagRules != "" {
		opts = append(opts, reposcan.WithRulesDir(flagRules))
	}
	infos, err := reposcan.ListRules(opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "KIND\tSEVERITY\tDESCRIPTION\n")
	fmt.Fprintf(tw, "----\t--------\t-----------\n")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Kind, info.Severity, info.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d rules loaded\n", len(infos))
	return nil
}
