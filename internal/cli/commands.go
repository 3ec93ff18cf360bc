package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/database"
	"github.com/Rahul-Chotaliya/tradehub/internal/report"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
)

// --- userAddCmd ---

type userAddCmd struct {
	out      io.Writer
	username string
	password string
}

func (*userAddCmd) Name() string     { return "useradd" }
func (*userAddCmd) Synopsis() string { return "creates a user that can obtain API tokens" }
func (*userAddCmd) Usage() string {
	return `useradd -u <username> -p <password>

Creates a user. The password is stored as a bcrypt hash.
`
}
func (c *userAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "The username.")
	f.StringVar(&c.password, "p", "", "The password, at least 8 characters.")
}

func (c *userAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "Error: -u and -p flags are required.")
		return subcommands.ExitUsageError
	}

	e, ctx, err := openEnv(ctx, true)
	if err != nil {
		return fail(c.out, err)
	}
	defer e.Close()

	key, _, err := service.LoadKey(e.cfg.Auth.Secret)
	if err != nil {
		return fail(c.out, err)
	}

	authService := service.NewAuthService(repository.NewUserRepository(e.db), key, e.cfg.Auth.TokenTTL)
	user, err := authService.CreateUser(ctx, request.CreateUserRequest{Username: c.username, Password: c.password})
	if err != nil {
		return fail(c.out, err)
	}

	fmt.Fprintf(c.out, "Created user %s (%s)\n", user.Username, user.ID)
	return subcommands.ExitSuccess
}

// --- reconcileCmd ---

type reconcileCmd struct {
	out io.Writer
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "recomputes every cached position from its ledger" }
func (*reconcileCmd) Usage() string {
	return `reconcile

Recomputes quantity and cost basis of every asset from its transactions and repairs
the ones whose cached values drifted.
`
}
func (*reconcileCmd) SetFlags(_ *flag.FlagSet) {}

func (c *reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ctx, err := openEnv(ctx, true)
	if err != nil {
		return fail(c.out, err)
	}
	defer e.Close()

	reconcileService := service.NewReconcileService(
		e.db,
		repository.NewAssetRepository(e.db),
		repository.NewTransactionRepository(e.db),
		e.cfg.Ledger.OversellPolicy,
		e.cfg.Reconcile.Concurrency,
	)

	result, err := reconcileService.ReconcileAll(ctx)
	if err != nil {
		return fail(c.out, err)
	}

	fmt.Fprintf(c.out, "Checked %d assets, repaired %d, failed %d\n", result.Checked, result.Drifted, result.Failed)
	if result.Failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- holdingsCmd ---

type holdingsCmd struct {
	out      io.Writer
	username string
	raw      bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "prints a user's holdings" }
func (*holdingsCmd) Usage() string {
	return `holdings -u <username> [-raw]

Prints the user's assets per category with quantity, average cost and cost basis.
`
}
func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "The username.")
	f.BoolVar(&c.raw, "raw", false, "Print the Markdown source instead of rendering it.")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "Error: -u flag is required.")
		return subcommands.ExitUsageError
	}

	e, ctx, err := openEnv(ctx, true)
	if err != nil {
		return fail(c.out, err)
	}
	defer e.Close()

	user, err := repository.NewUserRepository(e.db).GetUserByUsername(ctx, c.username)
	if err != nil {
		return fail(c.out, err)
	}

	categoryService := service.NewCategoryService(
		repository.NewCategoryRepository(e.db),
		repository.NewAssetRepository(e.db),
	)
	categories, err := categoryService.GetCategoriesWithAssets(ctx, user.ID)
	if err != nil {
		return fail(c.out, err)
	}

	md := report.HoldingsMarkdown(user.Username, categories)
	if c.raw {
		fmt.Fprint(c.out, md)
		return subcommands.ExitSuccess
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fail(c.out, err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fail(c.out, err)
	}

	fmt.Fprint(c.out, rendered)
	return subcommands.ExitSuccess
}

// --- migrateCmd ---

type migrateCmd struct {
	out    io.Writer
	status bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "applies pending database migrations" }
func (*migrateCmd) Usage() string {
	return `migrate [-status]

Applies pending schema migrations and prints the schema version. With -status, lists
every migration and whether it has been applied without applying any.
`
}
func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.status, "status", false, "List migrations and their state.")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, _, err := openEnv(ctx, !c.status)
	if err != nil {
		return fail(c.out, err)
	}
	defer e.Close()

	if c.status {
		if err := database.MigrationStatus(e.db, e.log); err != nil {
			return fail(c.out, err)
		}
	}

	version, err := database.Version(e.db)
	if err != nil {
		return fail(c.out, err)
	}

	fmt.Fprintf(c.out, "Database schema at version %d\n", version)
	return subcommands.ExitSuccess
}
