// Package builtin embeds the YAML detection rule catalog via go:embed.
package builtin

import "embed"

//go:embed *.yaml
var builtinRules embed.FS

// FS returns the embedded filesystem containing the built-in rules.
func FS() embed.FS {
	return builtinRules
}
