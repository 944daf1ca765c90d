package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/service/directory"
	"github.com/karbala-lab/daleel/pkg/service/worker"
)

// Directory holds CLI flags for the spreadsheet directory source
type Directory struct {
	dataDir        string
	reloadInterval time.Duration
}

// Flags returns CLI flags for directory configuration
func (x *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory containing the department .xlsx files",
			Value:       "data",
			Sources:     cli.EnvVars("DALEEL_DATA_DIR"),
			Destination: &x.dataDir,
		},
		&cli.DurationFlag{
			Name:        "reload-interval",
			Usage:       "Periodic directory refresh interval",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("DALEEL_RELOAD_INTERVAL"),
			Destination: &x.reloadInterval,
		},
	}
}

// DataDir returns the configured data directory
func (x *Directory) DataDir() string {
	return x.dataDir
}

// Configure creates the snapshot service and its reload worker. The worker
// is not started; the caller decides when the initial load happens.
func (x *Directory) Configure() (*directory.Service, *worker.DirectoryReloadWorker) {
	svc := directory.New(x.dataDir)
	return svc, worker.NewDirectoryReloadWorker(svc, x.dataDir, x.reloadInterval)
}
