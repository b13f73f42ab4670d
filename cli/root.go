package cli

import (
	"github.com/spf13/cobra"
	"hermannm.dev/csvexplorer/api"
	"hermannm.dev/csvexplorer/config"
	"hermannm.dev/devlog/log"
)

func NewRootCommand(cfg config.Config) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "csvexplorer",
		Short: "Explore CSV files",
		Long: `csvexplorer loads a CSV file, infers the type of each column, and lets you filter,
page through, chart and export the data, either from the command line or through an HTTP API.`,
		SilenceUsage: true,
	}

	rootCommand.AddCommand(
		newServeCommand(cfg),
		newSchemaCommand(cfg),
		newViewCommand(cfg),
		newChartCommand(cfg),
		newExportCommand(cfg),
	)

	return rootCommand
}

func newServeCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explorerAPI := api.NewCSVExplorerAPI(api.ConfigFromEnv(cfg))

			log.Infof("Listening on port %s...", cfg.API.Port)
			return explorerAPI.ListenAndServe()
		},
	}
}
