package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/repository/memory"
	"github.com/karbala-lab/daleel/pkg/repository/sqlite"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend string
	dbPath  string
}

// Flags returns CLI flags for repository configuration
func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (sqlite or memory)",
			Value:       "sqlite",
			Sources:     cli.EnvVars("DALEEL_REPOSITORY_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database path (sqlite backend)",
			Value:       "stats.db",
			Sources:     cli.EnvVars("DALEEL_DB_PATH"),
			Destination: &x.dbPath,
		},
	}
}

// DBPath returns the configured SQLite database path
func (x *Repository) DBPath() string {
	return x.dbPath
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on the returned
// repository.
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case "sqlite":
		repo, err := sqlite.New(ctx, x.dbPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", x.dbPath)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", x.backend))
	}
}
