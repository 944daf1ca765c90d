package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/karbala-lab/daleel/pkg/cli/config"
	tgctrl "github.com/karbala-lab/daleel/pkg/controller/telegram"
	"github.com/karbala-lab/daleel/pkg/usecase"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var tgCfg config.Telegram
	var dirCfg config.Directory
	var textsCfg config.Texts

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, tgCfg.Flags()...)
	flags = append(flags, dirCfg.Flags()...)
	flags = append(flags, textsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the bot",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			tg, err := tgCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Telegram service")
			}

			texts, err := textsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load texts")
			}

			ucOpts, err := appCfg.UsecaseOptions()
			if err != nil {
				return err
			}

			dirSvc, reloadWorker := dirCfg.Configure()
			if err := reloadWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start directory reload worker")
			}
			defer reloadWorker.Stop()

			uc := usecase.New(repo, dirSvc, tg, ucOpts...)
			ctrl := tgctrl.New(uc, tg, dirSvc, tgCfg.AdminID(), texts)

			if tgCfg.AdminID() == 0 {
				logging.Default().Warn("admin-id not configured, /admin and /reload are disabled")
			}

			sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				return ctrl.Run(egCtx)
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("shutting down")
				tg.Stop()
				return nil
			})

			if err := eg.Wait(); err != nil {
				return goerr.Wrap(err, "bot terminated with error")
			}
			logging.Default().Info("shutdown completed")
			return nil
		},
	}
}
