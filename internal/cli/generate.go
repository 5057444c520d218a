package cli

import (
	"errors"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/entities"
)

// drawQuestions returns n questions from pool in random order without repeats.
func drawQuestions(pool []entities.Question, n int, rng *rand.Rand) []entities.Question {
	shuffled := append([]entities.Question(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

func newGenerateCmd(a *App) *cobra.Command {
	var (
		count    int
		category string
		level    int
		dryRun   bool
		seed     int64
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draw random questions",
		Long: `Draw random questions matching the filters, without repeats.

Examples:
  qotd generate -n 3               # three questions from the whole bank
  qotd generate -n 1 -c deep -l 4  # one serious question
  qotd generate -n 5 --dry-run     # only report how many questions match`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("-n must be at least 1")
			}
			if err := validateLevelFlag(level, true); err != nil {
				return err
			}
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}

			pool, err := client.ListQuestions(cmd.Context(), dataclient.ListQuestionsFilter{
				Category:         category,
				SeriousnessLevel: level,
			})
			if err != nil {
				return err
			}

			if dryRun {
				a.Out.Info("%d question(s) match; %d would be drawn.", len(pool), min(count, len(pool)))
				return nil
			}
			if len(pool) == 0 {
				a.Out.Warn("No questions match these filters.")
				return &exitError{code: 1}
			}
			if len(pool) < count {
				a.Out.Warn("Only %d question(s) match; drawing all of them.", len(pool))
			}

			if !cmd.Flags().Changed("seed") {
				seed = a.Now().UnixNano()
			}
			drawn := drawQuestions(pool, count, rand.New(rand.NewSource(seed)))

			if asJSON {
				return a.Out.JSON(drawn)
			}
			for i, q := range drawn {
				a.Out.Printf("%d. %s\n", i+1, q.Text)
				a.Out.Dim("   #%d, level %d", q.ID, q.SeriousnessLevel)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of questions to draw")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only draw from this category")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Only draw this seriousness level")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the matching pool without drawing")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible draw")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
