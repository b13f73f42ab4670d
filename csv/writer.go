package csv

import (
	"encoding/csv"
	"io"

	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/wrap"
)

// WriteRows writes a header of the given columns, followed by the given columns of every row.
// Absent values are written as empty fields.
func WriteRows(output io.Writer, columns []string, rows []dataset.Row) error {
	writer := csv.NewWriter(output)

	if err := writer.Write(columns); err != nil {
		return wrap.Error(err, "failed to write CSV header row")
	}

	record := make([]string, len(columns))
	for i, row := range rows {
		for j, column := range columns {
			record[j] = row.Get(column).String()
		}

		if err := writer.Write(record); err != nil {
			return wrap.Errorf(err, "failed to write CSV row %d", i+1)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return wrap.Error(err, "failed to flush CSV output")
	}

	return nil
}
