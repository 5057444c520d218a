package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/entities"
)

func newStatsCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show question bank statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}
			stats, err := client.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return a.Out.JSON(stats)
			}
			a.Out.Stats(stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newCategoriesCmd(a *App) *cobra.Command {
	var (
		withCounts bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}

			if withCounts {
				cats, err := client.ListCategoriesWithCount(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return a.Out.JSON(cats)
				}
				plain := make([]entities.Category, 0, len(cats))
				counts := make(map[uint]int64, len(cats))
				for _, c := range cats {
					plain = append(plain, c.Category)
					counts[c.ID] = c.QuestionCount
				}
				a.Out.Categories(plain, counts)
				return nil
			}

			cats, err := client.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return a.Out.JSON(cats)
			}
			if len(cats) == 0 {
				a.Out.Println("No categories yet.")
				return nil
			}
			a.Out.Categories(cats, nil)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCounts, "counts", false, "Include question counts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

// dailyPicker is implemented by both backends but is not part of DataClient.
type dailyPicker interface {
	DailyPick(ctx context.Context) (*entities.DailyPick, error)
}

func newTodayCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the question of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}
			picker, ok := client.(dailyPicker)
			if !ok {
				return fmt.Errorf("%T cannot pick a question of the day", client)
			}

			pick, err := picker.DailyPick(cmd.Context())
			if errors.Is(err, dailypick.ErrNoQuestions) || errors.Is(err, dataclient.ErrNotFound) {
				a.Out.Warn("The question bank is empty.")
				return &exitError{code: 1}
			}
			if err != nil {
				return err
			}

			if asJSON {
				return a.Out.JSON(pick)
			}
			a.Out.Info("Question of the day (%s)", pick.Day)
			a.Out.Question(&pick.Question, a.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
