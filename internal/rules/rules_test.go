package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Berachem/reposcan/internal/rules"
	"github.com/Berachem/reposcan/internal/rules/builtin"
	"github.com/Berachem/reposcan/internal/types"
	"github.com/stretchr/testify/require"
)

func loadBuiltin(t *testing.T) []*rules.Rule {
	t.Helper()
	raws, err := rules.LoadFromFS(builtin.FS())
	require.NoError(t, err)
	compiled, errs := rules.CompileAll(raws)
	require.Empty(t, errs)
	return compiled
}

func TestBuiltinCatalogOrder(t *testing.T) {
	catalog := loadBuiltin(t)
	require.Len(t, catalog, 4)

	wantKinds := []types.Kind{
		types.KindInjectionPattern,
		types.KindScriptInjection,
		types.KindExposedSecret,
		types.KindWeakCrypto,
	}
	for i, kind := range wantKinds {
		require.Equal(t, kind, catalog[i].Kind)
	}
}

func TestBuiltinSeverities(t *testing.T) {
	catalog := loadBuiltin(t)

	want := map[types.Kind]types.Severity{
		types.KindInjectionPattern: types.SeverityCritical,
		types.KindScriptInjection:  types.SeverityHigh,
		types.KindExposedSecret:    types.SeverityHigh,
		types.KindWeakCrypto:       types.SeverityMedium,
	}
	for kind, sev := range want {
		r := rules.Find(catalog, kind)
		require.NotNil(t, r, "missing rule %s", kind)
		require.Equal(t, sev, r.Severity, "rule %s", kind)
		require.NotEmpty(t, r.Description)
		require.NotEmpty(t, r.Recommendation)
		require.NotEmpty(t, r.Patterns)
	}
}

func TestPatternsCaseInsensitive(t *testing.T) {
	catalog := loadBuiltin(t)
	crypto := rules.Find(catalog, types.KindWeakCrypto)
	require.NotNil(t, crypto)

	matched := false
	for _, re := range crypto.Patterns {
		if re.MatchString("digest = MD5(data)") {
			matched = true
		}
	}
	require.True(t, matched, "MD5( should match the weak-crypto rule regardless of case")
}

func TestCompileRejectsBadRules(t *testing.T) {
	_, err := rules.Compile(rules.RawRule{Kind: "", Patterns: []string{"x"}})
	require.Error(t, err)

	_, err = rules.Compile(rules.RawRule{Kind: "k", Patterns: nil})
	require.Error(t, err)

	_, err = rules.Compile(rules.RawRule{Kind: "k", Patterns: []string{"("}})
	require.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	rule := "kind: custom-kind\nseverity: high\ndescription: d\npatterns:\n  - 'foo'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(rule), 0o644))

	raws, err := rules.LoadFromDir(dir)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "custom-kind", raws[0].Kind)
}
