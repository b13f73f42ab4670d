package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"hermannm.dev/csvexplorer/aggregation"
	"hermannm.dev/csvexplorer/dataset"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/csvexplorer/session"
)

func renderSchema(output io.Writer, schema datatypes.Schema, rowCount int) {
	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(output)
	tableWriter.SetStyle(table.StyleLight)

	tableWriter.AppendHeader(table.Row{"Column", "Type"})
	for _, column := range schema.Columns {
		tableWriter.AppendRow(table.Row{column.Name, column.Type.String()})
	}

	tableWriter.Render()
	_, _ = fmt.Fprintf(output, "(%d rows, %d columns)\n", rowCount, len(schema.Columns))
}

func renderView(output io.Writer, view session.View) {
	if len(view.Rows) == 0 {
		_, _ = fmt.Fprintln(output, "No data matches the current filters")
		_, _ = fmt.Fprintln(output, view.Page.Summary())
		return
	}

	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(output)
	tableWriter.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(view.Columns))
	var columnConfigs []table.ColumnConfig
	for i, column := range view.Columns {
		header = append(header, column.Name)
		if column.Type == datatypes.ColumnTypeNumber {
			columnConfigs = append(
				columnConfigs,
				table.ColumnConfig{Number: i + 1, Align: text.AlignRight},
			)
		}
	}
	tableWriter.AppendHeader(header)
	tableWriter.SetColumnConfigs(columnConfigs)

	for _, row := range view.StringRows() {
		tableRow := make(table.Row, 0, len(row))
		for _, cell := range row {
			tableRow = append(tableRow, cell)
		}
		tableWriter.AppendRow(tableRow)
	}

	tableWriter.Render()
	_, _ = fmt.Fprintf(output, "%s (%s)\n", view.Page.Summary(), view.Page.Label())
	if view.ActiveFilters > 0 {
		_, _ = fmt.Fprintf(
			output, "%d of %d rows match %d filter(s)\n",
			view.FilteredRows, view.DatasetRows, view.ActiveFilters,
		)
	}
}

const maxBarWidth = 40

// textChartRenderer draws charts as a table, with a bar for each point scaled to the largest
// absolute value.
type textChartRenderer struct {
	output io.Writer
}

func (renderer *textChartRenderer) Render(chart aggregation.Chart) error {
	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(renderer.output)
	tableWriter.SetStyle(table.StyleLight)
	tableWriter.SetTitle(chart.Title)

	tableWriter.AppendHeader(table.Row{"Group", chart.SeriesLabel, ""})
	tableWriter.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	largest := 0.0
	for _, point := range chart.Points {
		largest = math.Max(largest, math.Abs(point.Value))
	}

	var total float64
	for _, point := range chart.Points {
		total += point.Value
	}

	for _, point := range chart.Points {
		bar := ""
		if largest > 0 {
			bar = strings.Repeat("█", int(math.Round(math.Abs(point.Value)/largest*maxBarWidth)))
		}
		if chart.Kind == aggregation.ChartKindPie && total != 0 {
			bar += fmt.Sprintf(" %.1f%%", point.Value/total*100)
		}

		tableWriter.AppendRow(table.Row{point.Label, dataset.FormatNumber(point.Value), bar})
	}

	tableWriter.Render()
	return nil
}

func (renderer *textChartRenderer) Teardown() {}
