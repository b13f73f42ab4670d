package filters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/wrap"
)

// FilterSet maps column names to the constraint on that column. Columns without an entry, or with
// an empty filter, are unconstrained.
type FilterSet map[string]Filter

// Filter holds the constraint for one column. Date columns use Range; all other columns use
// Expression.
type Filter struct {
	Expression string    `json:"expression,omitempty"`
	Range      DateRange `json:"range"`
}

// DateRange bounds are inclusive calendar dates in the form YYYY-MM-DD. An empty bound is open.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

const dateLayout = time.DateOnly

func (filter Filter) IsEmpty() bool {
	return filter.Expression == "" && filter.Range.IsEmpty()
}

func (dateRange DateRange) IsEmpty() bool {
	return dateRange.From == "" && dateRange.To == ""
}

// Validate checks that the filter has the shape expected for the given column type.
func (filter Filter) Validate(columnType datatypes.ColumnType) error {
	if columnType == datatypes.ColumnTypeDate {
		if filter.Expression != "" {
			return errors.New("date columns must be filtered by a from/to range")
		}

		var errs []error
		for _, bound := range []struct {
			name  string
			value string
		}{{"from", filter.Range.From}, {"to", filter.Range.To}} {
			if bound.value == "" {
				continue
			}
			if _, err := time.Parse(dateLayout, bound.value); err != nil {
				errs = append(
					errs,
					fmt.Errorf("invalid %s date '%s' (expected YYYY-MM-DD)", bound.name, bound.value),
				)
			}
		}
		if len(errs) > 0 {
			return wrap.Errors("invalid date range", errs...)
		}
		return nil
	}

	if !filter.Range.IsEmpty() {
		return fmt.Errorf("from/to ranges are only supported for date columns, not %v", columnType)
	}
	return nil
}

// RowMatches checks the row against every filter in the set.
func RowMatches(row dataset.Row, schema datatypes.Schema, filterSet FilterSet) bool {
	for column, filter := range filterSet {
		if filter.IsEmpty() {
			continue
		}

		columnType, _ := schema.TypeOf(column)
		if !CellMatches(row.Get(column), columnType, filter) {
			return false
		}
	}

	return true
}

// CellMatches checks a single cell against a filter, interpreting the filter by column type. Cells
// that cannot be parsed as the column's type never match. Unknown column types match everything.
func CellMatches(cell dataset.Value, columnType datatypes.ColumnType, filter Filter) bool {
	switch columnType {
	case datatypes.ColumnTypeString:
		return strings.Contains(
			strings.ToLower(cell.String()),
			strings.ToLower(filter.Expression),
		)
	case datatypes.ColumnTypeNumber:
		if filter.Expression == "" {
			return true
		}
		return MatchesNumberFilter(cell, filter.Expression)
	case datatypes.ColumnTypeDate:
		return matchesDateRange(cell, filter.Range)
	case datatypes.ColumnTypeBoolean:
		if filter.Expression == "" {
			return true
		}
		return cell.String() == filter.Expression
	default:
		return true
	}
}

func matchesDateRange(cell dataset.Value, dateRange DateRange) bool {
	if dateRange.IsEmpty() {
		return true
	}

	cellDate, ok := datatypes.ParseDate(cell)
	if !ok {
		return false
	}

	// YYYY-MM-DD strings sort chronologically.
	cellDateString := cellDate.Format(dateLayout)
	if dateRange.From != "" && cellDateString < dateRange.From {
		return false
	}
	if dateRange.To != "" && cellDateString > dateRange.To {
		return false
	}
	return true
}

// Apply returns the rows matching all filters, as a new slice.
func Apply(rows []dataset.Row, schema datatypes.Schema, filterSet FilterSet) []dataset.Row {
	filtered := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if RowMatches(row, schema, filterSet) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
