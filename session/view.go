package session

import (
	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/csvexplorer/pagination"
)

// View is the visible page of the filtered rows, restricted to the selected columns.
type View struct {
	Columns []datatypes.Column `json:"columns"`
	// Each row has one value per column in Columns.
	Rows          [][]dataset.Value `json:"rows"`
	Page          pagination.Page   `json:"page"`
	DatasetRows   int               `json:"datasetRows"`
	FilteredRows  int               `json:"filteredRows"`
	ActiveFilters int               `json:"activeFilters"`
}

func (session *Session) View() View {
	columns := make([]datatypes.Column, 0, len(session.viewState.SelectedColumns))
	for _, name := range session.viewState.SelectedColumns {
		columnType, _ := session.schema.TypeOf(name)
		columns = append(columns, datatypes.Column{Name: name, Type: columnType})
	}

	page := pagination.Paginate(
		len(session.filteredRows),
		session.viewState.RowsPerPage,
		session.viewState.CurrentPage,
	)

	visibleRows := session.filteredRows[page.StartIndex:page.EndIndex]
	rows := make([][]dataset.Value, 0, len(visibleRows))
	for _, row := range visibleRows {
		values := make([]dataset.Value, 0, len(columns))
		for _, column := range columns {
			values = append(values, row.Get(column.Name))
		}
		rows = append(rows, values)
	}

	return View{
		Columns:       columns,
		Rows:          rows,
		Page:          page,
		DatasetRows:   len(session.dataset.Rows),
		FilteredRows:  len(session.filteredRows),
		ActiveFilters: len(session.filterSet),
	}
}

// StringRows gives the visible rows with every cell as it should be displayed.
func (view View) StringRows() [][]string {
	rows := make([][]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]string, 0, len(row))
		for _, value := range row {
			cells = append(cells, value.String())
		}
		rows = append(rows, cells)
	}
	return rows
}
