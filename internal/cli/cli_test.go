package cli_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/Rahul-Chotaliya/tradehub/internal/cli"
)

func run(t *testing.T, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()

	var out bytes.Buffer
	fs := flag.NewFlagSet("tradehubctl", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "tradehubctl")
	cli.Register(commander, &out)

	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse args %v: %v", args, err)
	}

	return commander.Execute(context.Background()), out.String()
}

func TestCommands(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	t.Run("migrate -status leaves pending migrations unapplied", func(t *testing.T) {
		status, out := run(t, "migrate", "-status")

		if status != subcommands.ExitSuccess {
			t.Fatalf("Expected success, got %v: %s", status, out)
		}
		if !strings.Contains(out, "version 0") {
			t.Errorf("Expected schema version 0 on a fresh database, got %q", out)
		}
	})

	t.Run("migrate reports the schema version", func(t *testing.T) {
		status, out := run(t, "migrate")

		if status != subcommands.ExitSuccess {
			t.Fatalf("Expected success, got %v: %s", status, out)
		}
		if !strings.Contains(out, "version 2") {
			t.Errorf("Expected schema version 2, got %q", out)
		}
	})

	t.Run("useradd creates a user", func(t *testing.T) {
		status, out := run(t, "useradd", "-u", "alice", "-p", "correct horse")

		if status != subcommands.ExitSuccess {
			t.Fatalf("Expected success, got %v: %s", status, out)
		}
		if !strings.Contains(out, "Created user alice") {
			t.Errorf("Unexpected output %q", out)
		}
	})

	t.Run("useradd rejects a duplicate username", func(t *testing.T) {
		status, out := run(t, "useradd", "-u", "alice", "-p", "another password")

		if status != subcommands.ExitFailure {
			t.Errorf("Expected failure, got %v: %s", status, out)
		}
	})

	t.Run("useradd requires flags", func(t *testing.T) {
		status, _ := run(t, "useradd", "-u", "bob")

		if status != subcommands.ExitUsageError {
			t.Errorf("Expected usage error, got %v", status)
		}
	})

	t.Run("holdings prints raw markdown", func(t *testing.T) {
		status, out := run(t, "holdings", "-u", "alice", "-raw")

		if status != subcommands.ExitSuccess {
			t.Fatalf("Expected success, got %v: %s", status, out)
		}
		if !strings.Contains(out, "# Holdings of alice") || !strings.Contains(out, "_No holdings._") {
			t.Errorf("Unexpected report %q", out)
		}
	})

	t.Run("holdings fails for an unknown user", func(t *testing.T) {
		status, _ := run(t, "holdings", "-u", "nobody", "-raw")

		if status != subcommands.ExitFailure {
			t.Errorf("Expected failure, got %v", status)
		}
	})

	t.Run("reconcile with no assets", func(t *testing.T) {
		status, out := run(t, "reconcile")

		if status != subcommands.ExitSuccess {
			t.Fatalf("Expected success, got %v: %s", status, out)
		}
		if !strings.Contains(out, "Checked 0 assets") {
			t.Errorf("Unexpected output %q", out)
		}
	})
}
