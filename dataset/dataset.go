package dataset

// Row maps column names to cell values. A missing key is an absent value. Rows are never mutated
// after loading.
type Row map[string]Value

func (row Row) Get(column string) Value {
	if value, ok := row[column]; ok {
		return value
	}
	return Null()
}

type Dataset struct {
	Columns []string
	Rows    []Row
}

func (dataset Dataset) HasColumn(column string) bool {
	for _, candidate := range dataset.Columns {
		if candidate == column {
			return true
		}
	}
	return false
}

func (dataset Dataset) IsEmpty() bool {
	return len(dataset.Columns) == 0
}

// DistinctValues returns the distinct non-empty values of the column, in encounter order.
func DistinctValues(rows []Row, column string) []Value {
	var distinct []Value
	seen := make(map[Value]struct{})

	for _, row := range rows {
		value := row.Get(column)
		if value.IsEmpty() {
			continue
		}
		if _, alreadySeen := seen[value]; alreadySeen {
			continue
		}

		seen[value] = struct{}{}
		distinct = append(distinct, value)
	}

	return distinct
}
