package datatypes

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"hermannm.dev/csvexplorer/dataset"
)

type Schema struct {
	Columns []Column `json:"columns"`
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// InferSchema classifies every column of the dataset by its distinct non-empty values. A column
// gets a type only if all of its values conform to it, checked in the order number, boolean,
// date. Columns without any values, or with values of mixed types, become strings.
func InferSchema(data dataset.Dataset) Schema {
	columns := make([]Column, 0, len(data.Columns))
	for _, columnName := range data.Columns {
		distinctValues := dataset.DistinctValues(data.Rows, columnName)
		columns = append(columns, Column{Name: columnName, Type: inferColumnType(distinctValues)})
	}

	return Schema{Columns: columns}
}

func inferColumnType(distinctValues []dataset.Value) ColumnType {
	switch {
	case len(distinctValues) == 0:
		return ColumnTypeString
	case allValues(distinctValues, IsNumberShaped):
		return ColumnTypeNumber
	case allValues(distinctValues, IsBooleanShaped):
		return ColumnTypeBoolean
	case allValues(distinctValues, isDateShaped):
		return ColumnTypeDate
	default:
		return ColumnTypeString
	}
}

func allValues(values []dataset.Value, predicate func(dataset.Value) bool) bool {
	for _, value := range values {
		if !predicate(value) {
			return false
		}
	}
	return true
}

func IsNumberShaped(value dataset.Value) bool {
	_, ok := value.Float()
	return ok
}

func IsBooleanShaped(value dataset.Value) bool {
	if _, ok := value.Bool(); ok {
		return true
	}
	if value.Kind() != dataset.ValueKindText {
		return false
	}

	switch value.String() {
	case "true", "false", "TRUE", "FALSE":
		return true
	default:
		return false
	}
}

// Bare numbers are valid timestamps for the date parser, so they must be ruled out first.
func isDateShaped(value dataset.Value) bool {
	if IsNumberShaped(value) {
		return false
	}
	_, ok := ParseDate(value)
	return ok
}

// ParseDate parses text cells as calendar dates in UTC. Only text can be a date.
func ParseDate(value dataset.Value) (date time.Time, ok bool) {
	if value.Kind() != dataset.ValueKindText {
		return time.Time{}, false
	}

	text := strings.TrimSpace(value.String())
	if text == "" {
		return time.Time{}, false
	}

	date, err := parseDateText(text)
	if err != nil {
		return time.Time{}, false
	}
	return date.UTC(), true
}

func parseDateText(text string) (date time.Time, err error) {
	// dateparse may panic on some malformed input, which we treat as unparsable.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("failed to parse date '%s': %v", text, recovered)
		}
	}()

	return dateparse.ParseIn(text, time.UTC)
}

func (schema Schema) TypeOf(columnName string) (columnType ColumnType, ok bool) {
	for _, column := range schema.Columns {
		if column.Name == columnName {
			return column.Type, true
		}
	}
	return 0, false
}

func (schema Schema) ColumnNames() []string {
	names := make([]string, 0, len(schema.Columns))
	for _, column := range schema.Columns {
		names = append(names, column.Name)
	}
	return names
}
