package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"hermannm.dev/csvexplorer/aggregation"
	"hermannm.dev/csvexplorer/config"
	"hermannm.dev/csvexplorer/session"
	"hermannm.dev/wrap"
)

func newSchemaCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Show the inferred type of each column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := exploreFlags{rowsPerPage: cfg.CSV.DefaultRowsPerPage}
			explorer, err := loadSession(args[0], flags, cfg)
			if err != nil {
				return err
			}

			renderSchema(cmd.OutOrStdout(), explorer.Schema(), len(explorer.Dataset().Rows))
			return nil
		},
	}
}

func newViewCommand(cfg config.Config) *cobra.Command {
	var flags exploreFlags

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Show a page of the filtered rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := loadSession(args[0], flags, cfg)
			if err != nil {
				return err
			}

			renderView(cmd.OutOrStdout(), explorer.View())
			return nil
		},
	}

	flags.register(cmd, cfg.CSV.DefaultRowsPerPage)
	return cmd
}

func newChartCommand(cfg config.Config) *cobra.Command {
	var flags exploreFlags
	var kind, groupBy, measure, function, valueColumn, limit string

	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Aggregate the filtered rows into a bar or pie chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := parseChartFlags(kind, groupBy, measure, function, valueColumn, limit)
			if err != nil {
				return err
			}

			renderer := &textChartRenderer{output: cmd.OutOrStdout()}
			explorer, err := loadSession(args[0], flags, cfg, session.WithRenderer(renderer))
			if err != nil {
				return err
			}

			_, err = explorer.GenerateChart(spec)
			return err
		},
	}

	flags.register(cmd, cfg.CSV.DefaultRowsPerPage)
	cmd.Flags().StringVar(&kind, "kind", "bar", "chart kind (bar or pie)")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "column to group rows by")
	cmd.Flags().StringVar(&measure, "measure", "", "column to aggregate (bar charts)")
	cmd.Flags().StringVar(
		&function, "function", "sum", "aggregation function: sum/avg/count/max/min (bar charts)",
	)
	cmd.Flags().StringVar(
		&valueColumn, "value-column", "", "column to sum, instead of counting rows (pie charts)",
	)
	cmd.Flags().StringVar(
		&limit,
		"limit",
		"",
		fmt.Sprintf("max groups, or 'all' (pie charts, default %d)", aggregation.DefaultPieLimit),
	)

	return cmd
}

func parseChartFlags(
	kind, groupBy, measure, function, valueColumn, limit string,
) (aggregation.Spec, error) {
	chartKind, err := aggregation.ParseChartKind(kind)
	if err != nil {
		return aggregation.Spec{}, err
	}

	spec := aggregation.Spec{Kind: chartKind, GroupBy: groupBy}

	switch chartKind {
	case aggregation.ChartKindBar:
		spec.Measure = measure
		if spec.Function, err = aggregation.ParseFunction(function); err != nil {
			return aggregation.Spec{}, err
		}
	case aggregation.ChartKindPie:
		spec.ValueColumn = valueColumn
		if spec.Limit, err = aggregation.ParseLimit(limit); err != nil {
			return aggregation.Spec{}, err
		}
	}

	return spec, nil
}

func newExportCommand(cfg config.Config) *cobra.Command {
	var flags exploreFlags
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the filtered rows as CSV, with only the selected columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := loadSession(args[0], flags, cfg)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return explorer.Export(cmd.OutOrStdout())
			}

			outputFile, err := os.Create(outputPath)
			if err != nil {
				return wrap.Errorf(err, "failed to create '%s'", outputPath)
			}
			defer outputFile.Close()

			if err := explorer.Export(outputFile); err != nil {
				return err
			}
			return outputFile.Close()
		},
	}

	flags.register(cmd, cfg.CSV.DefaultRowsPerPage)
	cmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		fmt.Sprintf("file to write to, such as %s (default stdout)", session.ExportFileName),
	)

	return cmd
}
