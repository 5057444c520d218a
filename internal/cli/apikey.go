package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/auth"
	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/database"
)

// newAPIKeyCmd manages the keys a qotd server accepts. It always works on the
// local database given by --db, never on a remote.
func newAPIKeyCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys accepted by 'qotd serve'",
	}

	withService := func(run func(cmd *cobra.Command, args []string, svc *auth.Service) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := database.NewDatabase(a.dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			return run(cmd, args, auth.NewService(db.DB, config.NewConfig().Auth))
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a key",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, args []string, svc *auth.Service) error {
			key, full, err := svc.CreateKey(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.Out.Success("Created key #%d (%s)", key.ID, key.Name)
			a.Out.Println(full)
			a.Out.Dim("Store it now; it cannot be shown again.")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List keys",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, args []string, svc *auth.Service) error {
			keys, err := svc.ListKeys(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				a.Out.Println("No API keys.")
				return nil
			}

			now := a.Now()
			w := tabwriter.NewWriter(a.Out.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPREFIX\tCREATED\tLAST USED\tSTATUS")
			for _, k := range keys {
				lastUsed := "never"
				if k.LastUsedAt != nil {
					lastUsed = humanize.RelTime(*k.LastUsedAt, now, "ago", "from now")
				}
				status := "active"
				if k.RevokedAt != nil {
					status = "revoked"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					k.ID, k.Name, k.Prefix,
					humanize.RelTime(k.CreatedAt, now, "ago", "from now"),
					lastUsed, status)
			}
			return w.Flush()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke ID",
		Short: "Revoke a key",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, args []string, svc *auth.Service) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = svc.RevokeKey(cmd.Context(), id)
			if errors.Is(err, auth.ErrKeyNotFound) {
				return fmt.Errorf("API key #%d not found", id)
			}
			if err != nil {
				return err
			}
			a.Out.Success("Revoked key #%d", id)
			return nil
		}),
	})

	return cmd
}
