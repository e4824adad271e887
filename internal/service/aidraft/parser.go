package aidraft

import (
	"strings"
	"time"
)

// DraftRow is one parsed table row: the roster label as the model printed
// it plus one raw cell value per day column.
type DraftRow struct {
	Name  string
	Cells []string
}

// DraftTable is a parsed markdown pipe table. Columns holds the day
// headers; every row carries exactly len(Columns) cells.
type DraftTable struct {
	Columns []string
	Rows    []DraftRow
}

// ParseDraftTable extracts the first pipe table from model output. Lines
// without a pipe are ignored, separator rows (all dashes) are dropped, and
// columns with an empty or "Unnamed" header are discarded. Malformed input
// yields an empty table, never an error; the import step reports empty
// tables to the caller.
func ParseDraftTable(text string) DraftTable {
	var header []string
	var rows []DraftRow

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "|") {
			continue
		}

		cells := splitTableRow(line)
		if len(cells) < 2 || isSeparatorRow(cells) {
			continue
		}

		if header == nil {
			header = cells
			continue
		}

		row := DraftRow{Name: cells[0]}
		// Pad or truncate to the header width so column indexes line up.
		for i := 1; i < len(header); i++ {
			if i < len(cells) {
				row.Cells = append(row.Cells, cells[i])
			} else {
				row.Cells = append(row.Cells, "")
			}
		}
		if row.Name != "" {
			rows = append(rows, row)
		}
	}

	if header == nil {
		return DraftTable{}
	}

	table := DraftTable{Rows: rows}
	keep := make([]int, 0, len(header)-1)
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if name == "" || strings.HasPrefix(name, "Unnamed") {
			continue
		}
		keep = append(keep, i-1)
		table.Columns = append(table.Columns, name)
	}
	for r := range table.Rows {
		cells := make([]string, 0, len(keep))
		for _, idx := range keep {
			cells = append(cells, table.Rows[r].Cells[idx])
		}
		table.Rows[r].Cells = cells
	}
	return table
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

// ColumnDate resolves a day column header to a calendar date. Only strict
// ISO headers count; anything else makes the whole column unusable.
func ColumnDate(header string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(header))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// MatchEmployee finds the roster employee a draft row belongs to. The model
// prints rows as "First Last (Position)" but sometimes swaps the name order;
// after dropping the parenthetical, a row matches when either name contains
// the other, case-insensitively, or when every word of one appears in the
// other, so "Horvat Ana" still resolves against "Ana Horvat". The first
// roster hit wins; the second return is false when nobody matches.
func MatchEmployee(rowName string, names []string) (int, bool) {
	clean := rowName
	if i := strings.Index(clean, "("); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.ToLower(strings.TrimSpace(clean))
	if clean == "" {
		return 0, false
	}

	for idx, full := range names {
		candidate := strings.ToLower(strings.TrimSpace(full))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, clean) || strings.Contains(clean, candidate) {
			return idx, true
		}
		if wordsContained(clean, candidate) || wordsContained(candidate, clean) {
			return idx, true
		}
	}
	return 0, false
}

func wordsContained(a, b string) bool {
	bWords := strings.Fields(b)
	for _, w := range strings.Fields(a) {
		found := false
		for _, v := range bWords {
			if w == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
