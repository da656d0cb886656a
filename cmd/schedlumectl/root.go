package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/app"
	"github.com/noah-isme/schedlume-api/pkg/config"
	"github.com/noah-isme/schedlume-api/pkg/database"
	"github.com/noah-isme/schedlume-api/pkg/logger"
)

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "schedlumectl",
		Short:         "Manage a SchedLume schedule database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.NewCLI(opts.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newValidateCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newDayCmd(opts),
		newRemindCmd(opts),
		newBackupCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

// connect opens the configured database without running migrations or
// starting background jobs.
func (o *rootOptions) connect(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	o.logger.Debug("connected", zap.String("database", cfg.Database.Name), zap.String("host", cfg.Database.Host))
	return cfg, db, nil
}

func (o *rootOptions) withServices(ctx context.Context, fn func(*app.Services) error) error {
	cfg, db, err := o.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(app.NewServices(db, nil, cfg, o.logger))
}
