package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Berachem/reposcan"
)

func TestRulesTable(t *testing.T) {
	buf := new(bytes.Buffer)
	flagFormat = "terminal"
	flagRules = ""

	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rules"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "KIND")
	require.Contains(t, out, "SEVERITY")
	require.Contains(t, out, "injection-pattern")
	require.Contains(t, out, "4 rules loaded")
}

func TestRulesJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	flagFormat = "terminal" // overridden by --format
	flagRules = ""

	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rules", "--format", "json"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	var infos []reposcan.RuleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 4)
	require.Equal(t, "injection-pattern", infos[0].Kind)
	require.Equal(t, "critical", infos[0].Severity)
	require.NotEmpty(t, infos[0].Description)
}
