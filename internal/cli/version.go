package cli

import "github.com/spf13/cobra"

func newVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.Out.Printf("qotd %s (%s)\n", a.Version, a.Commit)
		},
	}
}
