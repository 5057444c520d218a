package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/interactive"
)

func newInteractiveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick a command and its options from prompts",
		Long: `Ask which command to run, collect its options, then run it.

The equivalent command line is printed first so it can be reused in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive() {
				return errors.New("interactive mode needs a terminal")
			}

			builder := interactive.NewBuilder()
			wizard := &interactive.Wizard{
				Prompter: a.Prompter,
				Builder:  builder,
				ModeFlag: a.modeFlag(),
				Out:      a.Out.Out,
			}
			line, err := wizard.Run()
			if err != nil {
				return err
			}

			a.Out.Dim("$ %s", quoteArgs(line))

			replay := NewRootCmd(a)
			replay.SetArgs(line[len(builder.Prefix):])
			return replay.ExecuteContext(cmd.Context())
		},
	}
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
