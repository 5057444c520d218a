package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/exporters"
	"github.com/mrlokans/qotd/internal/importers"
	"github.com/mrlokans/qotd/internal/normalize"
	"github.com/mrlokans/qotd/internal/utils"
)

// importBatchSize keeps bulk requests under the server's per-request cap.
const importBatchSize = 500

func newImportCmd(a *App) *cobra.Command {
	var (
		level          int
		categories     string
		skipDuplicates bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import questions from a file",
		Long: `Import questions from a JSON, YAML or plain text file.

JSON and YAML files hold records with "text", "seriousnessLevel" and
"categories"; text files hold one question per line. -l and -c apply to
records that do not set their own level or categories.

Examples:
  qotd import questions.txt -l 2 -c icebreaker
  qotd import bank.yaml --skip-duplicates`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLevelFlag(level, false); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			inputs, err := importers.Parse(f, importers.DetectFormat(args[0]), importers.Options{
				DefaultLevel:      level,
				DefaultCategories: utils.SplitList(categories),
			})
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			client, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}

			// positions maps each submitted input back to its record in the file.
			positions := make([]int, len(inputs))
			for i := range positions {
				positions[i] = i
			}
			if skipDuplicates {
				var skipped int
				inputs, positions, skipped, err = dropDuplicates(cmd.Context(), client, inputs)
				if err != nil {
					return err
				}
				if skipped > 0 {
					a.Out.Dim("Skipping %d duplicate(s)", skipped)
				}
			}

			var created int
			var failures []dataclient.BulkCreateError
			for start := 0; start < len(inputs); start += importBatchSize {
				end := min(start+importBatchSize, len(inputs))
				result, err := client.CreateQuestionsBulk(cmd.Context(), inputs[start:end])
				if err != nil {
					return err
				}
				created += len(result.Created)
				for _, e := range result.Errors {
					e.Index = recordPosition(positions, start+e.Index)
					failures = append(failures, e)
				}
			}

			a.Out.Success("Imported %d question(s)", created)
			for _, e := range failures {
				a.Out.Warn("  record %d (%q): %s", e.Index+1, e.Text, e.Error)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d record(s) failed to import", len(failures))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 1, "Level for records without one")
	cmd.Flags().StringVarP(&categories, "categories", "c", "", "Comma separated categories for records without any")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Skip questions that already exist or repeat in the file")
	return cmd
}

// recordPosition maps a submitted index back to the file record. An index the
// backend made up is reported as is.
func recordPosition(positions []int, i int) int {
	if i < 0 || i >= len(positions) {
		return i
	}
	return positions[i]
}

// dropDuplicates removes inputs that repeat earlier ones in the file or already exist.
func dropDuplicates(ctx context.Context, client dataclient.DataClient, inputs []dataclient.CreateQuestionInput) ([]dataclient.CreateQuestionInput, []int, int, error) {
	kept := make([]dataclient.CreateQuestionInput, 0, len(inputs))
	positions := make([]int, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	skipped := 0

	for i, input := range inputs {
		norm := normalize.Text(input.Text)
		if norm != "" && seen[norm] {
			skipped++
			continue
		}
		seen[norm] = true

		if norm != "" {
			dup, err := client.CheckDuplicate(ctx, input.Text)
			if err != nil {
				return nil, nil, 0, err
			}
			if dup.IsDuplicate {
				skipped++
				continue
			}
		}
		kept = append(kept, input)
		positions = append(positions, i)
	}
	return kept, positions, skipped, nil
}

func newExportCmd(a *App) *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every question",
		Long: `Export the whole question bank as JSON, YAML or Markdown.

Without -o the export is written to stdout. The format defaults to the
output file's extension, or JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := exporters.FormatFromPath(outPath)
			if format != "" {
				parsed, err := exporters.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			client, err := a.client(cmd.Context(), outPath == "")
			if err != nil {
				return err
			}
			qs, err := client.ListQuestions(cmd.Context(), dataclient.ListQuestionsFilter{})
			if err != nil {
				return err
			}

			if outPath == "" {
				if err := exporters.Export(a.Out.Out, f, qs); err != nil {
					return fmt.Errorf("failed to export: %w", err)
				}
				return nil
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := exportAndClose(file, f, qs); err != nil {
				return fmt.Errorf("failed to export to %s: %w", outPath, err)
			}
			a.Out.Success("Exported %d question(s) to %s", len(qs), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or markdown")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// exportAndClose writes qs to wc and closes it. A failed close is an export failure.
func exportAndClose(wc io.WriteCloser, f exporters.Format, qs []entities.Question) error {
	if err := exporters.Export(wc, f, qs); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
