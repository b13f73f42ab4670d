package filters

import (
	"fmt"

	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/enumnames"
)

// Kind describes which input a front end should offer for filtering a column.
type Kind uint8

const (
	KindSubstring Kind = iota + 1
	KindComparison
	KindDateRange
	KindSelect
)

var kindMap = enumnames.NewMap(map[Kind]string{
	KindSubstring:  "substring",
	KindComparison: "comparison",
	KindDateRange:  "date_range",
	KindSelect:     "select",
})

func (kind Kind) IsValid() bool {
	return kindMap.ContainsEnumValue(kind)
}

func (kind Kind) String() string {
	return kindMap.GetNameOrFallback(kind, "INVALID_FILTER_KIND")
}

func (kind Kind) MarshalJSON() ([]byte, error) {
	return kindMap.MarshalToNameJSON(kind)
}

func (kind *Kind) UnmarshalJSON(bytes []byte) error {
	return kindMap.UnmarshalFromNameJSON(bytes, kind)
}

func KindForType(columnType datatypes.ColumnType) Kind {
	switch columnType {
	case datatypes.ColumnTypeNumber:
		return KindComparison
	case datatypes.ColumnTypeDate:
		return KindDateRange
	case datatypes.ColumnTypeBoolean:
		return KindSelect
	default:
		return KindSubstring
	}
}

// Control is everything a front end needs to render the filter input for one column.
type Control struct {
	Column      string               `json:"column"`
	ColumnType  datatypes.ColumnType `json:"columnType"`
	Kind        Kind                 `json:"kind"`
	Placeholder string               `json:"placeholder,omitempty"`
	// Only set for KindSelect.
	Options []string `json:"options,omitempty"`
	Current Filter   `json:"current"`
}

func NewControl(
	column string,
	columnType datatypes.ColumnType,
	rows []dataset.Row,
	current Filter,
) Control {
	control := Control{
		Column:     column,
		ColumnType: columnType,
		Kind:       KindForType(columnType),
		Current:    current,
	}

	switch control.Kind {
	case KindSubstring:
		control.Placeholder = fmt.Sprintf("Filter %s...", column)
	case KindComparison:
		control.Placeholder = "e.g. 3.14, >10, 5-20"
	case KindSelect:
		control.Options = Options(rows, column)
	}

	return control
}

// Options lists the distinct values of the column as they would be compared by a boolean filter.
func Options(rows []dataset.Row, column string) []string {
	distinct := dataset.DistinctValues(rows, column)
	options := make([]string, 0, len(distinct))
	seen := make(map[string]bool, len(distinct))

	for _, value := range distinct {
		option := value.String()
		if !seen[option] {
			seen[option] = true
			options = append(options, option)
		}
	}

	return options
}
