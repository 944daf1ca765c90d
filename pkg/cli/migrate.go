package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/repository/sqlite"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

func cmdMigrate() *cli.Command {
	var dbPath string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create or update the stats database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "db-path",
				Usage:       "SQLite database path",
				Value:       "stats.db",
				Sources:     cli.EnvVars("DALEEL_DB_PATH"),
				Destination: &dbPath,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Print the schema without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if dryRun {
				color.Cyan("Schema for %s:", dbPath)
				color.White("%s", sqlite.Schema)
				return nil
			}

			repo, err := sqlite.New(ctx, dbPath)
			if err != nil {
				return goerr.Wrap(err, "failed to apply schema", goerr.V("path", dbPath))
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			color.Green("✓ schema applied to %s", dbPath)
			return nil
		},
	}
}
