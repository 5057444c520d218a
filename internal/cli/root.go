package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/dataclient"
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "qotd",
		Short: "Manage a bank of conversation questions",
		Long: `qotd manages a bank of "question of the day" prompts.

Commands work against a local SQLite database or a remote qotd server.
A remote is used when QOTD_API_URL and QOTD_API_KEY are set or a .qotdrc
file exists; --local and --remote override that choice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case a.forceLocal:
				a.Selector.SetModeOverride(dataclient.ModeLocal)
			case a.forceRemote:
				a.Selector.SetModeOverride(dataclient.ModeRemote)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&a.forceLocal, "local", false, "Use the local SQLite database")
	root.PersistentFlags().BoolVar(&a.forceRemote, "remote", false, "Use the configured remote server")
	root.PersistentFlags().StringVar(&a.dbPath, "db", a.dbPath, "Path to the local database file")
	root.MarkFlagsMutuallyExclusive("local", "remote")

	root.SetIn(a.stdin)
	root.SetOut(a.Out.Out)
	root.SetErr(a.Out.Err)

	root.AddCommand(newListCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newCategoriesCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newTodayCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newAPIKeyCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newInteractiveCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

// Run executes args (without the program name) and returns the process exit code.
func Run(ctx context.Context, a *App, args []string) int {
	defer a.Selector.Close()

	root := NewRootCmd(a)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		a.Out.Error("%s", err)
		return 1
	}
	return 0
}

// Execute runs the CLI for the current process and exits on failure.
func Execute(version, commit string) {
	a := NewApp(Options{Version: version, Commit: commit})
	if code := Run(context.Background(), a, os.Args[1:]); code != 0 {
		os.Exit(code)
	}
}

// exitError ends a command with a non-zero status after it has already
// reported the problem itself.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "exit status " + itoa(e.code)
}
