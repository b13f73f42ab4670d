package session

import (
	"errors"
	"fmt"
	"io"

	"hermannm.dev/csvexplorer/csv"
	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/csvexplorer/filters"
	"hermannm.dev/csvexplorer/pagination"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// Parser turns an uploaded file into a dataset.
type Parser interface {
	Parse(file io.ReadSeeker) (dataset.Dataset, error)
}

// ViewState is the user's current view of the dataset.
type ViewState struct {
	CurrentPage     int      `json:"currentPage"`
	RowsPerPage     int      `json:"rowsPerPage"`
	SelectedColumns []string `json:"selectedColumns"`
}

// Session owns all state of one user's exploration: the loaded dataset, its inferred schema, the
// active filters and the view state. Every command recomputes the derived filtered rows from
// scratch. A Session is not safe for concurrent use.
type Session struct {
	dataset   dataset.Dataset
	schema    datatypes.Schema
	filterSet filters.FilterSet
	viewState ViewState

	filteredRows []dataset.Row

	parser      Parser
	renderer    ChartRenderer
	subscribers []func(View)
}

type Option func(*Session)

func WithParser(parser Parser) Option {
	return func(session *Session) {
		session.parser = parser
	}
}

func WithRenderer(renderer ChartRenderer) Option {
	return func(session *Session) {
		session.renderer = renderer
	}
}

// WithRowsPerPage sets the initial page size. Values not in pagination.AllowedRowsPerPage are
// ignored.
func WithRowsPerPage(rowsPerPage int) Option {
	return func(session *Session) {
		if pagination.ValidateRowsPerPage(rowsPerPage) == nil {
			session.viewState.RowsPerPage = rowsPerPage
		}
	}
}

func New(options ...Option) *Session {
	session := &Session{
		filterSet: filters.FilterSet{},
		viewState: ViewState{
			CurrentPage:     1,
			RowsPerPage:     pagination.DefaultRowsPerPage,
			SelectedColumns: nil,
		},
		parser:   csv.NewParser(csv.DefaultLinesToCheckForDelimiter),
		renderer: noopRenderer{},
	}

	for _, option := range options {
		option(session)
	}

	return session
}

// Subscribe registers a function to be called with the new view after every command that changes
// it.
func (session *Session) Subscribe(subscriber func(View)) {
	session.subscribers = append(session.subscribers, subscriber)
}

// Load parses the file and replaces the session's dataset with it. Filters and the current page
// are reset, and all columns are selected. If parsing fails, the previous dataset is kept.
func (session *Session) Load(file io.ReadSeeker) error {
	data, err := session.parser.Parse(file)
	if err != nil {
		return ParseError{Cause: err}
	}
	if len(data.Columns) == 0 {
		return ParseError{Cause: errors.New("CSV file has no columns")}
	}

	schema := datatypes.InferSchema(data)

	session.dataset = data
	session.schema = schema
	session.filterSet = filters.FilterSet{}
	session.viewState.CurrentPage = 1
	session.viewState.SelectedColumns = append([]string(nil), data.Columns...)

	log.Infof("Loaded CSV with %d rows and %d columns", len(data.Rows), len(data.Columns))
	for _, column := range schema.Columns {
		log.Debugf("inferred type of column '%s': %v", column.Name, column.Type)
	}

	session.recompute()
	return nil
}

func (session *Session) IsLoaded() bool {
	return !session.dataset.IsEmpty()
}

func (session *Session) Dataset() dataset.Dataset {
	return session.dataset
}

func (session *Session) Schema() datatypes.Schema {
	return session.schema
}

func (session *Session) ViewState() ViewState {
	viewState := session.viewState
	viewState.SelectedColumns = append([]string(nil), viewState.SelectedColumns...)
	return viewState
}

// FilteredRows returns the rows passing all current filters. The returned slice must not be
// modified.
func (session *Session) FilteredRows() []dataset.Row {
	return session.filteredRows
}

// SelectColumns sets the columns shown in the view and included in exports, in the given order.
func (session *Session) SelectColumns(columns []string) error {
	if !session.IsLoaded() {
		return ErrNoDataset
	}
	if len(columns) == 0 {
		return ValidationError{Message: "please select at least one column"}
	}

	var errs []error
	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if !session.dataset.HasColumn(column) {
			errs = append(errs, fmt.Errorf("unknown column '%s'", column))
		} else if seen[column] {
			errs = append(errs, fmt.Errorf("column '%s' selected more than once", column))
		}
		seen[column] = true
	}
	if len(errs) > 0 {
		return newValidationError(wrap.Errors("invalid columns", errs...), "invalid selection")
	}

	session.viewState.SelectedColumns = append([]string(nil), columns...)
	session.recompute()
	return nil
}

// SetFilter replaces the filter on the column, and goes back to the first page. An empty filter
// removes the constraint.
func (session *Session) SetFilter(column string, filter filters.Filter) error {
	if !session.IsLoaded() {
		return ErrNoDataset
	}

	columnType, ok := session.schema.TypeOf(column)
	if !ok {
		return ValidationError{Message: fmt.Sprintf("unknown column '%s'", column)}
	}
	if err := filter.Validate(columnType); err != nil {
		return newValidationError(err, fmt.Sprintf("invalid filter for column '%s'", column))
	}

	if filter.IsEmpty() {
		delete(session.filterSet, column)
	} else {
		session.filterSet[column] = filter
	}

	session.viewState.CurrentPage = 1
	session.recompute()
	return nil
}

func (session *Session) ClearFilter(column string) error {
	return session.SetFilter(column, filters.Filter{})
}

// ClearFilters removes all filters, and goes back to the first page.
func (session *Session) ClearFilters() error {
	if !session.IsLoaded() {
		return ErrNoDataset
	}

	session.filterSet = filters.FilterSet{}
	session.viewState.CurrentPage = 1
	session.recompute()
	return nil
}

func (session *Session) Filters() filters.FilterSet {
	filterSet := make(filters.FilterSet, len(session.filterSet))
	for column, filter := range session.filterSet {
		filterSet[column] = filter
	}
	return filterSet
}

// FilterControls describes the filter input for every selected column.
func (session *Session) FilterControls() ([]filters.Control, error) {
	if !session.IsLoaded() {
		return nil, ErrNoDataset
	}

	controls := make([]filters.Control, 0, len(session.viewState.SelectedColumns))
	for _, column := range session.viewState.SelectedColumns {
		columnType, _ := session.schema.TypeOf(column)
		controls = append(
			controls,
			filters.NewControl(column, columnType, session.dataset.Rows, session.filterSet[column]),
		)
	}
	return controls, nil
}

func (session *Session) SetRowsPerPage(rowsPerPage int) error {
	if err := pagination.ValidateRowsPerPage(rowsPerPage); err != nil {
		return newValidationError(err, "invalid page size")
	}

	session.viewState.RowsPerPage = rowsPerPage
	session.viewState.CurrentPage = 1
	session.recompute()
	return nil
}

func (session *Session) Navigate(navigation pagination.Navigation) error {
	if !navigation.IsValid() {
		return ValidationError{Message: fmt.Sprintf("invalid page navigation %v", navigation)}
	}

	session.viewState.CurrentPage = pagination.Navigate(
		session.viewState.CurrentPage,
		session.totalPages(),
		navigation,
	)
	session.recompute()
	return nil
}

// GoToPage moves to the given page, kept within the available pages.
func (session *Session) GoToPage(page int) {
	session.viewState.CurrentPage = pagination.Clamp(page, session.totalPages())
	session.recompute()
}

func (session *Session) totalPages() int {
	return pagination.TotalPages(len(session.filteredRows), session.viewState.RowsPerPage)
}

func (session *Session) recompute() {
	session.filteredRows = filters.Apply(session.dataset.Rows, session.schema, session.filterSet)

	if len(session.subscribers) == 0 {
		return
	}

	view := session.View()
	for _, subscriber := range session.subscribers {
		subscriber(view)
	}
}
