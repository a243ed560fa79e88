package textsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTablesFindsAlignedColumns(t *testing.T) {
	text := "Room Overview\n" +
		"Room          Em [lx]    UGR\n" +
		"Office 1.01   520        16\n" +
		"Office 1.02   485        17\n" +
		"\n" +
		"End of table section."

	tables := DetectTables(text)
	require.Len(t, tables, 1)

	cells := tables[0].Cells
	require.Len(t, cells, 3)
	assert.Equal(t, []string{"Room", "Em [lx]", "UGR"}, cells[0])
	assert.Equal(t, []string{"Office 1.01", "520", "16"}, cells[1])
}

func TestDetectTablesIgnoresSingleRows(t *testing.T) {
	// one aligned line between prose is not a table
	text := "prose line\nleft          right\nmore prose\n"
	assert.Empty(t, DetectTables(text))
}

func TestDetectTablesPadsRaggedRows(t *testing.T) {
	text := "a    b    c\nd    e\n"
	tables := DetectTables(text)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Cells, 2)
	assert.Len(t, tables[0].Cells[1], 3)
	assert.Equal(t, "", tables[0].Cells[1][2])
}

func TestDetectTablesSplitsOnTabs(t *testing.T) {
	text := "Room\tEm\nOffice\t520\n"
	tables := DetectTables(text)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Office", "520"}, tables[0].Cells[1])
}

func TestTableText(t *testing.T) {
	table := Table{Cells: [][]string{
		{"Office 1.01", "520", "16"},
		{"Office 1.02", "485", "17"},
	}}
	assert.Equal(t, "Office 1.01 520 16\nOffice 1.02 485 17\n", TableText(table))
}
