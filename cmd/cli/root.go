package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dbFlag string
	var pipelineFlag string
	var logLevelFlag string

	ctx := newCommandContext(&dbFlag, &pipelineFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "royalty",
		Short:         "Catalog matching and royalty pipeline estimates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", getEnvOrDefault("ROYALTY_DB_PATH", "royalty.sqlite3"), "Path to the SQLite catalog database")
	rootCmd.PersistentFlags().StringVar(&pipelineFlag, "pipeline-config", getEnvOrDefault("ROYALTY_PIPELINE_CONFIG", ""), "Pipeline tuning file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", getEnvOrDefault("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newWorkCommand(ctx))
	rootCmd.AddCommand(newMetaCommand(ctx))
	rootCmd.AddCommand(newMatchCommand(ctx))
	rootCmd.AddCommand(newReconcileCommand(ctx))
	rootCmd.AddCommand(newPipelineCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
