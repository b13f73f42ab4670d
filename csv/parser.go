package csv

import (
	"fmt"
	"io"
	"strings"

	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

const DefaultLinesToCheckForDelimiter = 20

// Parser reads CSV files with a header row into datasets, converting fields to numbers, booleans
// or nulls where they are unambiguous.
type Parser struct {
	LinesToCheckForDelimiter int
}

func NewParser(linesToCheckForDelimiter int) Parser {
	if linesToCheckForDelimiter <= 0 {
		linesToCheckForDelimiter = DefaultLinesToCheckForDelimiter
	}
	return Parser{LinesToCheckForDelimiter: linesToCheckForDelimiter}
}

func (parser Parser) Parse(csvFile io.ReadSeeker) (dataset.Dataset, error) {
	reader, err := NewReader(csvFile, parser.LinesToCheckForDelimiter)
	if err != nil {
		return dataset.Dataset{}, err
	}

	header, err := reader.ReadHeaderRow()
	if err != nil {
		return dataset.Dataset{}, wrap.Error(err, "failed to read CSV column names from header row")
	}

	columns := uniqueColumnNames(header)
	data := dataset.Dataset{Columns: columns, Rows: nil}

	for {
		fields, rowNumber, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			return dataset.Dataset{}, wrap.Error(err, "failed to read CSV file")
		}

		if len(fields) > len(columns) {
			log.Debugf(
				"dropping %d extra fields in CSV row %d",
				len(fields)-len(columns),
				rowNumber,
			)
		}

		data.Rows = append(data.Rows, convertRow(columns, fields))
	}

	log.Debugf(
		"parsed CSV with delimiter %q: %d rows, %d columns",
		reader.Delimiter(),
		len(data.Rows),
		len(data.Columns),
	)
	return data, nil
}

// Fields beyond the header are dropped, and missing trailing fields are left absent.
func convertRow(columns []string, fields []string) dataset.Row {
	row := make(dataset.Row, len(columns))
	for i, field := range fields {
		if i >= len(columns) {
			break
		}
		row[columns[i]] = ConvertField(field)
	}
	return row
}

func ConvertField(field string) dataset.Value {
	switch field {
	case "":
		return dataset.Null()
	case "true", "TRUE":
		return dataset.Bool(true)
	case "false", "FALSE":
		return dataset.Bool(false)
	}

	if number, ok := dataset.ParseDecimal(field); ok {
		return dataset.Number(number)
	}

	return dataset.Text(field)
}

// Duplicate header names get a numeric suffix ("name", "name_1", ...), so that every column can be
// addressed by name.
func uniqueColumnNames(header []string) []string {
	columns := make([]string, 0, len(header))
	taken := make(map[string]bool, len(header))

	for _, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")

		uniqueName := name
		for suffix := 1; taken[uniqueName]; suffix++ {
			uniqueName = fmt.Sprintf("%s_%d", name, suffix)
		}

		taken[uniqueName] = true
		columns = append(columns, uniqueName)
	}

	return columns
}
