package textsource

import (
	"regexp"
	"strings"
)

var cellSplitRe = regexp.MustCompile(`\s{2,}|\t`)

// DetectTables finds table-like regions in layout-preserved page text: runs
// of two or more consecutive lines that each split into two or more cells on
// wide gaps. Lighting-study tables (room grids, luminaire schedules) survive
// layout-preserving extraction as aligned columns, so this recovers them
// without geometric analysis.
func DetectTables(text string) []Table {
	lines := strings.Split(text, "\n")

	var tables []Table
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, Table{Cells: normalizeWidth(run)})
		}
		run = nil
	}

	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) >= 2 {
			run = append(run, cells)
			continue
		}
		flush()
	}
	flush()
	return tables
}

func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	parts := cellSplitRe.Split(trimmed, -1)
	var cells []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// normalizeWidth pads ragged rows to the widest row so the grid is
// rectangular.
func normalizeWidth(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, width)
		copy(row, r)
		out[i] = row
	}
	return out
}

// TableText flattens a table back into lines so the parameter extractor can
// run its patterns over cell-adjacent text ("Office 500 lux 0.6 19").
func TableText(t Table) string {
	var b strings.Builder
	for _, row := range t.Cells {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
