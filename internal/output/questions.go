package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/utils"
)

const questionColumnWidth = 60

// JSON pretty-prints v to Out.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// QuestionTable prints questions as an aligned table with relative ages.
func (p *Printer) QuestionTable(qs []entities.Question, now time.Time) {
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEVEL\tQUESTION\tCATEGORIES\tCREATED")
	for _, q := range qs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			q.ID,
			q.SeriousnessLevel,
			utils.Truncate(q.Text, questionColumnWidth),
			strings.Join(q.CategoryNames(), ", "),
			humanize.RelTime(q.CreatedAt, now, "ago", "from now"),
		)
	}
	w.Flush()
}

// Question prints every field of a single question.
func (p *Printer) Question(q *entities.Question, now time.Time) {
	categories := strings.Join(q.CategoryNames(), ", ")
	if categories == "" {
		categories = "(none)"
	}
	p.Printf("#%d  %s\n", q.ID, q.Text)
	p.Printf("  Level:      %d\n", q.SeriousnessLevel)
	p.Printf("  Categories: %s\n", categories)
	p.Printf("  Created:    %s (%s)\n", q.CreatedAt.Format(time.RFC3339), humanize.RelTime(q.CreatedAt, now, "ago", "from now"))
	p.Printf("  Updated:    %s (%s)\n", q.UpdatedAt.Format(time.RFC3339), humanize.RelTime(q.UpdatedAt, now, "ago", "from now"))
}

// Stats prints a stats snapshot.
func (p *Printer) Stats(s *entities.Stats) {
	p.Printf("Questions: %s\n", humanize.Comma(s.Total))

	p.Println("\nBy level:")
	if len(s.ByLevel) == 0 {
		p.Println("  (none)")
	}
	for _, l := range s.ByLevel {
		p.Printf("  %d: %d\n", l.SeriousnessLevel, l.Count)
	}

	p.Println("\nBy category:")
	if len(s.ByCategory) == 0 {
		p.Println("  (none)")
	}
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	for _, c := range s.ByCategory {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", c.Name, c.Color, c.Count)
	}
	w.Flush()
}

// Categories prints categories, with question counts when counts is non-nil.
func (p *Printer) Categories(cats []entities.Category, counts map[uint]int64) {
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	if counts != nil {
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tQUESTIONS")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tCOLOR")
	}
	for _, c := range cats {
		if counts != nil {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", c.ID, c.Name, c.Color, counts[c.ID])
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	w.Flush()
}
