package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"hermannm.dev/csvexplorer/config"
	"hermannm.dev/csvexplorer/csv"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/csvexplorer/filters"
	"hermannm.dev/csvexplorer/pagination"
	"hermannm.dev/csvexplorer/session"
	"hermannm.dev/wrap"
)

// exploreFlags are the view settings shared by all commands that load a file.
type exploreFlags struct {
	columns     []string
	filters     []string
	rowsPerPage int
	page        string
}

func (flags *exploreFlags) register(cmd *cobra.Command, defaultRowsPerPage int) {
	cmd.Flags().StringSliceVar(
		&flags.columns, "columns", nil, "columns to include, in order (default all)",
	)
	cmd.Flags().StringArrayVar(
		&flags.filters,
		"filter",
		nil,
		"filter as column=expression, or column=FROM..TO for date columns (repeatable)",
	)
	cmd.Flags().IntVar(
		&flags.rowsPerPage, "rows", defaultRowsPerPage, "rows per page (10, 25, 50 or 100)",
	)
	cmd.Flags().StringVar(&flags.page, "page", "1", "page number, or one of first/prev/next/last")
}

// loadSession parses the CSV file at the given path, and applies the flags to a new session.
func loadSession(
	path string,
	flags exploreFlags,
	cfg config.Config,
	options ...session.Option,
) (*session.Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to open '%s'", path)
	}
	defer file.Close()

	options = append(options, session.WithParser(csv.NewParser(cfg.CSV.DelimiterLinesToCheck)))
	explorer := session.New(options...)

	if err := explorer.Load(file); err != nil {
		return nil, wrap.Errorf(err, "failed to load '%s'", path)
	}

	if len(flags.columns) > 0 {
		if err := explorer.SelectColumns(flags.columns); err != nil {
			return nil, err
		}
	}

	for _, filterFlag := range flags.filters {
		column, filter, err := parseFilterFlag(filterFlag, explorer.Schema())
		if err != nil {
			return nil, err
		}
		if err := explorer.SetFilter(column, filter); err != nil {
			return nil, err
		}
	}

	if err := explorer.SetRowsPerPage(flags.rowsPerPage); err != nil {
		return nil, err
	}

	if err := goToPage(explorer, flags.page); err != nil {
		return nil, err
	}

	return explorer, nil
}

// parseFilterFlag parses 'column=expression'. Date columns take a range 'FROM..TO', where either
// bound may be left out.
func parseFilterFlag(
	filterFlag string,
	schema datatypes.Schema,
) (column string, filter filters.Filter, err error) {
	column, expression, ok := strings.Cut(filterFlag, "=")
	if !ok || column == "" {
		return "", filters.Filter{}, session.ValidationError{
			Message: fmt.Sprintf("invalid filter '%s' (expected column=expression)", filterFlag),
		}
	}

	columnType, ok := schema.TypeOf(column)
	if ok && columnType == datatypes.ColumnTypeDate {
		from, to, _ := strings.Cut(expression, "..")
		return column, filters.Filter{Range: filters.DateRange{From: from, To: to}}, nil
	}

	return column, filters.Filter{Expression: expression}, nil
}

func goToPage(explorer *session.Session, page string) error {
	if page == "" {
		return nil
	}

	if pageNumber, err := strconv.Atoi(page); err == nil {
		explorer.GoToPage(pageNumber)
		return nil
	}

	navigation, err := pagination.ParseNavigation(page)
	if err != nil {
		return session.ValidationError{Message: "invalid page", Cause: err}
	}
	return explorer.Navigate(navigation)
}
