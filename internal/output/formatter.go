// Package output renders scan reports for the terminal (ANSI) and as
// JSON, and provides the spinner-backed CLI progress sink.
package output

import (
	"io"

	"github.com/Berachem/reposcan/internal/types"
)

// Formatter is the interface for rendering a scan report.
type Formatter interface {
	Format(w io.Writer, rep *types.ScanReport) error
}
