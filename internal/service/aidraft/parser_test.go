package aidraft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraftTable(t *testing.T) {
	text := "Evo prijedloga rasporeda za sljedeći tjedan:\n" +
		"\n" +
		"| Zaposlenik | 2026-09-07 | 2026-09-08 | 2026-09-09 |\n" +
		"|---|:---:|---|---|\n" +
		"| Ana Horvat (Recepcioner) | Jutarnja (07:00-15:00) | SLOBODAN | Popodnevna (15:00-23:00) |\n" +
		"| Ivan Kovač (Voditelj Recepcije) | Jutarnja (07:00-15:00) | Jutarnja (07:00-15:00) |\n" +
		"\n" +
		"Sretno s planiranjem!\n"

	table := ParseDraftTable(text)
	require.Equal(t, []string{"2026-09-07", "2026-09-08", "2026-09-09"}, table.Columns)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Ana Horvat (Recepcioner)", table.Rows[0].Name)
	assert.Equal(t, []string{"Jutarnja (07:00-15:00)", "SLOBODAN", "Popodnevna (15:00-23:00)"}, table.Rows[0].Cells)

	// The short row is padded to the header width.
	assert.Equal(t, []string{"Jutarnja (07:00-15:00)", "Jutarnja (07:00-15:00)", ""}, table.Rows[1].Cells)
}

func TestParseDraftTableDropsUnnamedColumns(t *testing.T) {
	text := "| Zaposlenik | 2026-09-07 | Unnamed: 2 | 2026-09-08 |\n" +
		"| Ana Horvat | Jutarnja | smeće | SLOBODAN |\n"

	table := ParseDraftTable(text)
	require.Equal(t, []string{"2026-09-07", "2026-09-08"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Jutarnja", "SLOBODAN"}, table.Rows[0].Cells)
}

func TestParseDraftTableMalformedInput(t *testing.T) {
	assert.Empty(t, ParseDraftTable("").Columns)
	assert.Empty(t, ParseDraftTable("nema tablice ovdje").Columns)
	// A lone pipe without at least two cells is not a table.
	assert.Empty(t, ParseDraftTable("|samo jedna ćelija|").Columns)
}

func TestColumnDate(t *testing.T) {
	d, ok := ColumnDate(" 2026-09-07 ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), d)

	for _, header := range []string{"Ponedjeljak", "07.09.2026.", "2026-9-7", ""} {
		_, ok := ColumnDate(header)
		assert.False(t, ok, header)
	}
}

func TestMatchEmployee(t *testing.T) {
	roster := []string{"Ana Horvat", "Ivan Kovač", "Marija Novak"}

	tests := []struct {
		rowName string
		wantIdx int
		wantOK  bool
	}{
		{"Ana Horvat (Recepcioner)", 0, true},
		{"ana horvat", 0, true},
		// Some drafts print the name surname-first.
		{"Horvat Ana (Recepcioner)", 0, true},
		{"kovač ivan", 1, true},
		// The row may print more than the roster stores, or less.
		{"Ivan Kovač stariji", 1, true},
		{"Marija", 2, true},
		{"Petar Babić (Kuhar)", 0, false},
		{"(Recepcioner)", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		idx, ok := MatchEmployee(tt.rowName, roster)
		assert.Equal(t, tt.wantOK, ok, tt.rowName)
		if tt.wantOK {
			assert.Equal(t, tt.wantIdx, idx, tt.rowName)
		}
	}
}

func TestMatchEmployeeFirstHitWins(t *testing.T) {
	roster := []string{"Ana Horvat", "Ana Horvatić"}
	idx, ok := MatchEmployee("Ana Horvat", roster)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}
