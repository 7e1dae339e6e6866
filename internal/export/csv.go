package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
)

// RecordsCSV streams batch outcomes as CSV with the same column layout as
// the XLSX adapter.
func RecordsCSV(w io.Writer, tpl *template.Template, outcomes []entity.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(tpl)); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, out := range outcomes {
		if err := cw.Write(Row(tpl, out)); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
