package aggregation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/wrap"
)

// Spec configures a chart. Bar charts use Measure and Function; pie charts use ValueColumn (empty
// for row counts) and Limit (0 for all groups).
type Spec struct {
	Kind        ChartKind `json:"kind"`
	GroupBy     string    `json:"groupBy"`
	Measure     string    `json:"measure,omitempty"`
	Function    Function  `json:"function,omitempty"`
	ValueColumn string    `json:"valueColumn,omitempty"`
	Limit       int       `json:"limit,omitempty"`
}

// DefaultPieLimit is the number of groups shown in pie charts unless configured otherwise.
const DefaultPieLimit = 10

// ParseLimit parses a pie chart limit, which is either a positive number or "all" (returned as 0).
// An empty string gives DefaultPieLimit.
func ParseLimit(text string) (int, error) {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "":
		return DefaultPieLimit, nil
	case "all":
		return 0, nil
	}

	limit, err := strconv.Atoi(text)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit '%s' (must be a positive number or 'all')", text)
	}
	return limit, nil
}

func (spec Spec) Validate(columns []string) error {
	switch spec.Kind {
	case ChartKindBar:
		if spec.GroupBy == "" {
			return errors.New("please select a column to group by")
		}
		if spec.Measure == "" {
			return errors.New("please select a column to measure")
		}
		if spec.Function != 0 && !spec.Function.IsValid() {
			return fmt.Errorf("invalid aggregation function %v", spec.Function)
		}
		return validateColumns(columns, spec.GroupBy, spec.Measure)
	case ChartKindPie:
		if spec.GroupBy == "" {
			return errors.New("please select a column to group by")
		}
		if spec.Limit < 0 {
			return fmt.Errorf("pie chart limit cannot be negative, got %d", spec.Limit)
		}
		return validateColumns(columns, spec.GroupBy, spec.ValueColumn)
	default:
		return errors.New("please select a chart type ('bar' or 'pie')")
	}
}

func validateColumns(columns []string, names ...string) error {
	var errs []error

	for _, name := range names {
		if name == "" {
			continue
		}
		if !containsColumn(columns, name) {
			errs = append(errs, fmt.Errorf("unknown column '%s'", name))
		}
	}

	if len(errs) > 0 {
		return wrap.Errors("invalid chart columns", errs...)
	}
	return nil
}

func containsColumn(columns []string, name string) bool {
	for _, column := range columns {
		if column == name {
			return true
		}
	}
	return false
}

// Chart is an aggregated series with everything a renderer needs to draw it.
type Chart struct {
	Kind        ChartKind `json:"kind"`
	Title       string    `json:"title"`
	SeriesLabel string    `json:"seriesLabel"`
	Points      []Point   `json:"points"`
	Colors      []string  `json:"colors"`
}

func (chart Chart) HasData() bool {
	return len(chart.Points) > 0
}

const barColor = "rgba(54, 162, 235, 0.8)"

var pieColors = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0",
	"#9966FF", "#FF9F40", "#FF6384", "#C9CBCF",
	"#4BC0C0", "#9966FF", "#FF9F40", "#36A2EB",
	"#FFCE56", "#FF6384", "#C9CBCF",
}

// Build aggregates the rows as configured by the spec, which is expected to be validated.
func Build(rows []dataset.Row, spec Spec) Chart {
	switch spec.Kind {
	case ChartKindPie:
		valueLabel := "count"
		if spec.ValueColumn != "" {
			valueLabel = "sum of " + spec.ValueColumn
		}

		return Chart{
			Kind:        ChartKindPie,
			Title:       fmt.Sprintf("Distribution by %s (%s)", spec.GroupBy, valueLabel),
			SeriesLabel: valueLabel,
			Points:      AggregatePie(rows, spec.GroupBy, spec.ValueColumn, spec.Limit),
			Colors:      pieColors,
		}
	default:
		function := spec.Function
		if !function.IsValid() {
			function = FunctionSum
		}
		seriesLabel := fmt.Sprintf("%s of %s", capitalize(function.String()), spec.Measure)

		return Chart{
			Kind:        ChartKindBar,
			Title:       fmt.Sprintf("%s by %s", seriesLabel, spec.GroupBy),
			SeriesLabel: seriesLabel,
			Points:      AggregateBar(rows, spec.GroupBy, spec.Measure, function),
			Colors:      []string{barColor},
		}
	}
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
