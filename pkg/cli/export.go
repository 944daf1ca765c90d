package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/cli/config"
	"github.com/karbala-lab/daleel/pkg/repository/sqlite"
	"github.com/karbala-lab/daleel/pkg/usecase"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

// cmdExport builds an analytics report offline, without talking to Telegram
func cmdExport() *cli.Command {
	var appCfg config.App
	var dbPath string
	var kindStr string
	var formatStr string
	var outDir string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database path",
			Value:       "stats.db",
			Sources:     cli.EnvVars("DALEEL_DB_PATH"),
			Destination: &dbPath,
		},
		&cli.StringFlag{
			Name:        "kind",
			Usage:       "Report kind (summary, users_all, users_used, top_depts, top_users, full)",
			Value:       "full",
			Destination: &kindStr,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format (csv or xlsx)",
			Value:       "xlsx",
			Destination: &formatStr,
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "Output directory",
			Value:       ".",
			Destination: &outDir,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Write an analytics report to a file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := usecase.ParseExportKind(kindStr)
			if err != nil {
				return err
			}
			format, err := usecase.ParseExportFormat(formatStr)
			if err != nil {
				return err
			}
			ucOpts, err := appCfg.UsecaseOptions()
			if err != nil {
				return err
			}

			repo, err := sqlite.New(ctx, dbPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, nil, nil, ucOpts...)

			filename, data, err := uc.Export.Build(ctx, kind, format)
			if err != nil {
				return goerr.Wrap(err, "failed to build report")
			}

			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
			}

			color.Green("✓ wrote %s (%d bytes)", path, len(data))
			return nil
		},
	}
}
