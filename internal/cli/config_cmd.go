package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/dataclient"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the remote server connection",
		Long: `Manage the remote server connection stored in ` + clientconfig.FileName + `.

The remote is taken from ` + clientconfig.FileName + ` in the working directory,
or from ` + clientconfig.EnvAPIURL + ` and ` + clientconfig.EnvAPIKey + `.`,
	}

	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigClearCmd(a))
	cmd.AddCommand(newConfigTestCmd(a))
	return cmd
}

func newConfigSetCmd(a *App) *cobra.Command {
	var apiURL, apiKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the API URL and key",
		Long: `Save the API URL and key to ` + clientconfig.FileName + `.

With --url and --key the values are saved directly; otherwise you are
prompted for them and the connection is tested first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL = strings.TrimSpace(apiURL)
			apiKey = strings.TrimSpace(apiKey)

			if apiURL == "" && apiKey == "" {
				if !a.Interactive() {
					return errors.New("not a terminal: pass --url and --key")
				}
				_, err := a.Setup.Configure(cmd.Context())
				return err
			}
			if apiURL == "" || apiKey == "" {
				return clientconfig.ErrIncompleteRemote
			}

			remote := clientconfig.Remote{APIURL: apiURL, APIKey: apiKey}
			if err := a.Store.Save(clientconfig.Document{APIURL: apiURL, APIKey: apiKey}); err != nil {
				return err
			}
			a.Out.Success("Config saved to %s", a.Store.Path())

			if err := a.Setup.Check(cmd.Context(), remote); err != nil {
				a.Out.Warn("%s.", clientconfig.DescribeProbeError(remote, err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "url", "", "API base URL")
	cmd.Flags().StringVar(&apiKey, "key", "", "API key")
	return cmd
}

func newConfigShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := a.Store.Load()

			a.Out.Printf("Config file: %s\n", a.Store.Path())
			if doc.APIURL == "" && doc.APIKey == "" {
				a.Out.Dim("  (not set)")
			} else {
				a.Out.Printf("  API URL: %s\n", doc.APIURL)
				a.Out.Printf("  API Key: %s\n", maskKey(doc.APIKey))
			}

			active := a.Selector.ResolveActiveMode()
			switch {
			case active.Mode == dataclient.ModeLocal:
				a.Out.Printf("Active mode: local (%s)\n", a.dbPath)
			case active.APIURL == "":
				a.Out.Printf("Active mode: remote (not configured)\n")
			default:
				a.Out.Printf("Active mode: remote (%s)\n", active.APIURL)
			}
			return nil
		},
	}
}

func newConfigClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete " + clientconfig.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Store.Clear(); err != nil {
				return err
			}
			a.Out.Success("Config cleared (%s)", a.Store.Path())
			return nil
		},
	}
}

func newConfigTestCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check that the configured remote answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			remote := a.Store.ResolveRemote()
			if remote == nil {
				return dataclient.ErrRemoteNotConfigured
			}

			a.Out.Info("Testing connection to %s...", remote.APIURL)
			if err := a.Setup.Check(cmd.Context(), *remote); err != nil {
				return errors.New(clientconfig.DescribeProbeError(*remote, err))
			}
			a.Out.Success("Connection successful.")
			return nil
		},
	}
}
