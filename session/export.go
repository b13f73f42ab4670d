package session

import (
	"io"

	"hermannm.dev/csvexplorer/csv"
	"hermannm.dev/wrap"
)

// ExportFileName is the suggested name for files produced by Export.
const ExportFileName = "filtered-data.csv"

// Export writes the filtered rows as CSV, with only the selected columns.
func (session *Session) Export(output io.Writer) error {
	if !session.IsLoaded() {
		return ErrNoDataset
	}

	err := csv.WriteRows(output, session.viewState.SelectedColumns, session.filteredRows)
	if err != nil {
		return wrap.Error(err, "failed to export filtered rows")
	}
	return nil
}
