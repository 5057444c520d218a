package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/utils"
)

func newListCmd(a *App) *cobra.Command {
	var (
		category string
		level    int
		search   string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions",
		Long: `List questions, newest first.

Examples:
  qotd list                  # every question
  qotd list -c icebreaker    # one category
  qotd list -l 3 -s travel   # level 3 questions mentioning "travel"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLevelFlag(level, true); err != nil {
				return err
			}
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}

			qs, err := client.ListQuestions(cmd.Context(), dataclient.ListQuestionsFilter{
				Category:         category,
				SeriousnessLevel: level,
				Search:           search,
				Limit:            limit,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return a.Out.JSON(qs)
			}
			if len(qs) == 0 {
				a.Out.Println("No questions found.")
				a.Out.Dim("Use 'qotd add' or 'qotd import' to add some.")
				return nil
			}
			a.Out.QuestionTable(qs, a.Now())
			a.Out.Printf("\nTotal: %d question(s)\n", len(qs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category name")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Filter by seriousness level")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by text (case-insensitive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of questions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := a.client(cmd.Context(), asJSON)
			if err != nil {
				return err
			}

			q, err := client.GetQuestion(cmd.Context(), id)
			if err != nil {
				return err
			}
			if q == nil {
				a.Out.Warn("Question #%d not found.", id)
				return &exitError{code: 1}
			}

			if asJSON {
				return a.Out.JSON(q)
			}
			a.Out.Question(q, a.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newAddCmd(a *App) *cobra.Command {
	var (
		level      int
		categories string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Add a question",
		Long: `Add a question to the bank.

The text is checked against existing questions first (ignoring case,
punctuation and accents); use --force to add it anyway.

Example:
  qotd add "What would you do with an extra hour each day?" -l 2 -c fun,time`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if err := validateLevelFlag(level, false); err != nil {
				return err
			}
			client, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}

			if !force {
				dup, err := client.CheckDuplicate(cmd.Context(), text)
				if err != nil {
					return err
				}
				if dup.IsDuplicate {
					return duplicateError(dup)
				}
			}

			q, err := client.CreateQuestion(cmd.Context(), dataclient.CreateQuestionInput{
				Text:             text,
				SeriousnessLevel: level,
				CategoryNames:    utils.SplitList(categories),
			})
			if err != nil {
				return err
			}
			a.Out.Success("Added question #%d", q.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 1, "Seriousness level")
	cmd.Flags().StringVarP(&categories, "categories", "c", "", "Comma separated category names")
	cmd.Flags().BoolVar(&force, "force", false, "Add even if a similar question exists")
	return cmd
}

func duplicateError(dup *dataclient.DuplicateCheckResult) error {
	if dup.ExistingID != nil && dup.ExistingText != nil {
		return fmt.Errorf("duplicate of #%d: %q (use --force to add anyway)", *dup.ExistingID, *dup.ExistingText)
	}
	return errors.New("a matching question already exists (use --force to add anyway)")
}

func newEditCmd(a *App) *cobra.Command {
	var (
		text       string
		level      int
		categories string
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a question",
		Long: `Change the text, level or categories of a question.

-c replaces all categories. It takes category IDs or existing category
names, comma separated; pass -c "" to remove every category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var input dataclient.UpdateQuestionInput
			if cmd.Flags().Changed("text") {
				input.Text = &text
			}
			if cmd.Flags().Changed("level") {
				if err := validateLevelFlag(level, false); err != nil {
					return err
				}
				input.SeriousnessLevel = &level
			}
			if input.Text == nil && input.SeriousnessLevel == nil && !cmd.Flags().Changed("categories") {
				return errors.New("nothing to change: pass -t, -l or -c")
			}

			client, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("categories") {
				ids, err := resolveCategoryIDs(cmd, client, utils.SplitList(categories))
				if err != nil {
					return err
				}
				input.CategoryIDs = &ids
			}

			q, err := client.UpdateQuestion(cmd.Context(), id, input)
			if errors.Is(err, dataclient.ErrNotFound) {
				return fmt.Errorf("question #%d not found", id)
			}
			if err != nil {
				return err
			}
			a.Out.Success("Updated question #%d", q.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "New question text")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "New seriousness level")
	cmd.Flags().StringVarP(&categories, "categories", "c", "", "Category IDs or names, comma separated")
	return cmd
}

// resolveCategoryIDs maps case-insensitive names or IDs onto category IDs.
// A reference matching a category name is a name even when it is numeric.
func resolveCategoryIDs(cmd *cobra.Command, client dataclient.DataClient, refs []string) ([]uint, error) {
	ids := make([]uint, 0, len(refs))
	if len(refs) == 0 {
		return ids, nil
	}

	cats, err := client.ListCategories(cmd.Context())
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, ref := range refs {
		if id, ok := byName[strings.ToLower(ref)]; ok {
			ids = append(ids, id)
			continue
		}
		n, err := strconv.ParseUint(ref, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("unknown category %q", ref)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

func newDeleteCmd(a *App) *cobra.Command {
	var (
		all bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "delete ID... | --all",
		Short: "Delete questions",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("pass either question IDs or --all, not both")
			}
			if !all && len(args) == 0 {
				return errors.New("pass at least one question ID, or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			client, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}

			if all {
				if !yes && a.Interactive() {
					ok, err := a.Prompter.Confirm("Delete ALL questions? This cannot be undone.", false)
					if err != nil {
						return err
					}
					if !ok {
						a.Out.Println("Cancelled.")
						return nil
					}
				}
				deleted, err := client.DeleteQuestions(cmd.Context(), nil)
				if err != nil {
					return err
				}
				a.Out.Success("Deleted %d question(s)", deleted)
				return nil
			}

			if len(ids) == 1 {
				err := client.DeleteQuestion(cmd.Context(), ids[0])
				if errors.Is(err, dataclient.ErrNotFound) {
					return fmt.Errorf("question #%d not found", ids[0])
				}
				if err != nil {
					return err
				}
				a.Out.Success("Deleted question #%d", ids[0])
				return nil
			}

			deleted, err := client.DeleteQuestions(cmd.Context(), ids)
			if err != nil {
				return err
			}
			a.Out.Success("Deleted %d question(s)", deleted)
			if missing := int64(len(ids)) - deleted; missing > 0 {
				a.Out.Warn("%d ID(s) did not match a question", missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every question")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newCheckCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check TEXT",
		Short: "Check whether a question already exists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}

			dup, err := client.CheckDuplicate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !dup.IsDuplicate {
				a.Out.Success("No duplicate found.")
				return nil
			}
			if dup.ExistingID != nil && dup.ExistingText != nil {
				a.Out.Warn("Duplicate of #%d: %s", *dup.ExistingID, *dup.ExistingText)
			} else {
				a.Out.Warn("A matching question already exists.")
			}
			return nil
		},
	}
}
