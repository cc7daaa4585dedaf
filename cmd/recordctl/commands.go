package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Apurer/recordkeeper/internal/app/api"
	"github.com/Apurer/recordkeeper/internal/app/demo"
	"github.com/Apurer/recordkeeper/internal/platform/migrations"
	platformobservability "github.com/Apurer/recordkeeper/internal/platform/observability"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

type rootOptions struct {
	configFile string
}

func (o *rootOptions) load() (api.Config, error) {
	return api.LoadConfigFile(o.configFile)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "recordctl",
		Short:         "Operate the recordkeeper catalog: schema, demo data and the API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional YAML configuration file")
	root.AddCommand(newMigrateCommand(opts), newDemoCommand(opts), newServeCommand(opts))
	return root
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL tables of every bounded context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.PostgresDSN == "" {
				return errors.New("migrate needs POSTGRES_DSN")
			}
			db, err := platformpostgres.Connect(cmd.Context(), cfg.PostgresDSN)
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			defer platformpostgres.Close(db)
			if err := migrations.Run(db); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newDemoCommand(opts *rootOptions) *cobra.Command {
	var usePostgres bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session through books, students, tickets, products and conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := platformobservability.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			instruments := &platformobservability.Instruments{Logger: logger}

			repos := api.NewRepositories(nil)
			if usePostgres {
				db, closeDB := platformpostgres.ConnectOrFallback(cmd.Context(), cfg.PostgresDSN, logger)
				defer closeDB()
				if db != nil {
					if err := migrations.Run(db); err != nil {
						return fmt.Errorf("migrate schema: %w", err)
					}
				}
				repos = api.NewRepositories(db)
			}
			logger.Debug("running demo", slog.Bool("postgres", usePostgres))
			return demo.Run(cmd.Context(), cmd.OutOrStdout(), api.NewServices(repos, instruments), nil)
		},
	}
	cmd.Flags().BoolVar(&usePostgres, "postgres", false, "store demo data in PostgreSQL instead of memory")
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return api.Run(cmd.Context(), cfg)
		},
	}
}
