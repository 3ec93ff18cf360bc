// Package cli implements the tradehubctl admin subcommands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/Rahul-Chotaliya/tradehub/internal/config"
	"github.com/Rahul-Chotaliya/tradehub/internal/database"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
)

// Commands returns every subcommand, writing their output to out.
func Commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&userAddCmd{out: out},
		&reconcileCmd{out: out},
		&holdingsCmd{out: out},
		&migrateCmd{out: out},
	}
}

// Register adds every subcommand to commander.
func Register(commander *subcommands.Commander, out io.Writer) {
	for _, c := range Commands(out) {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
}

// env is what every subcommand runs against.
type env struct {
	cfg *config.Config
	db  *sql.DB
	log zerolog.Logger
}

// openEnv loads configuration and opens the database. With migrate set it also applies
// pending migrations.
func openEnv(ctx context.Context, migrate bool) (*env, context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logger.ParseLevel(cfg.Log.Level))

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, ctx, err
	}

	if migrate {
		if err := database.Migrate(db, log); err != nil {
			db.Close()
			return nil, ctx, err
		}
	}

	return &env{cfg: cfg, db: db, log: log}, logger.WithContext(ctx, log), nil
}

func (e *env) Close() error {
	return e.db.Close()
}

func fail(w io.Writer, err error) subcommands.ExitStatus {
	fmt.Fprintf(w, "Error: %v\n", err)
	return subcommands.ExitFailure
}
