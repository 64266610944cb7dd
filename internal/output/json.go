package output

import (
	"encoding/json"
	"io"

	"github.com/Berachem/reposcan/internal/types"
)

// JSONFormatter writes the report as indented JSON, the same shape the
// report renderer collaborator consumes.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, rep *types.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
