package exporters

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mrlokans/qotd/internal/entities"
)

// writeMarkdown renders one section per seriousness level, lightest first.
func writeMarkdown(w io.Writer, qs []entities.Question) error {
	byLevel := make(map[int][]entities.Question)
	for _, q := range qs {
		byLevel[q.SeriousnessLevel] = append(byLevel[q.SeriousnessLevel], q)
	}
	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Questions\n\n%d questions\n", len(qs))

	for _, level := range levels {
		group := byLevel[level]
		sort.SliceStable(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		fmt.Fprintf(bw, "\n## Level %d\n\n", level)
		for _, q := range group {
			fmt.Fprintf(bw, "- %s", escapeMarkdown(q.Text))
			if names := q.CategoryNames(); len(names) > 0 {
				fmt.Fprintf(bw, " _(%s)_", strings.Join(names, ", "))
			}
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

func escapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`").Replace(s)
}
