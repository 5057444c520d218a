package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/entrypoint"
)

func newServeCmd(a *App) *cobra.Command {
	var port int32

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the qotd HTTP API",
		Long: `Run the qotd HTTP API on top of the local database.

Settings come from the environment (PORT, HOST, DATABASE_PATH, AUTH_MODE,
API_KEY, TASKS_ENABLED, DAILY_PICK_SCHEDULE, ...). --db and --port override them.

Examples:
  qotd serve
  qotd serve --port 8080 --db ./questions.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = a.dbPath
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			return entrypoint.Run(cfg, a.Version)
		},
	}

	cmd.Flags().Int32VarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	return cmd
}
