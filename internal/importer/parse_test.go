package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decline-cli/internal/model"
)

func TestParse_CoercesCells(t *testing.T) {
	rows := [][]string{
		{"Year", "Oil", "Liquid"},
		{"2019.0", "12.5t", "n/a"},
		{"", "", ""},
		{"  ", "", "   "},
		{"abc", "1e3", "-4"},
		{"2021"}, // short row
	}

	records, err := Parse(rows, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 2019, records[0].Year)
	assert.Equal(t, 12.5, records[0].Oil)
	assert.Equal(t, 0.0, records[0].Liquid)

	assert.Equal(t, 0, records[1].Year)
	assert.Equal(t, 1000.0, records[1].Oil)
	assert.Equal(t, -4.0, records[1].Liquid)

	assert.Equal(t, 2021, records[2].Year)
	assert.Equal(t, 0.0, records[2].Oil)
	assert.Equal(t, 0.0, records[2].Liquid)
}

func TestParse_NoData(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{name: "nil", rows: nil},
		{name: "header only", rows: [][]string{{"Year", "Oil", "Liquid"}}},
		{name: "header and blanks", rows: [][]string{{"Year", "Oil", "Liquid"}, {"", ""}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rows, DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoData))
		})
	}
}

func TestParse_WithoutHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeader = false

	records, err := Parse([][]string{{"2020", "1", "2"}}, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}

func TestParse_CustomColumns(t *testing.T) {
	opts := DefaultOptions()
	opts.YearColumn = 1
	opts.OilColumn = 3
	opts.LiquidColumn = 2

	records, err := Parse([][]string{
		{"Well", "Year", "Liquid", "Oil"},
		{"W-1", "2020", "130", "90"},
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, model.ProductionRecord{Year: 2020, Oil: 90, Liquid: 130, ActivePoint: "1"}, records[0])
}

func TestParse_ActiveColumn(t *testing.T) {
	opts := DefaultOptions()
	opts.ActiveColumn = 3

	records, err := Parse([][]string{
		{"Year", "Oil", "Liquid", "Active"},
		{"2019", "1", "2", "1"},
		{"2020", "1", "2", "0"},
		{"2021", "1", "2", " 1 "},
		{"2022", "1", "2", "yes"},
		{"2023", "1", "2"},
	}, opts)
	require.NoError(t, err)

	flags := make([]string, len(records))
	for i, r := range records {
		flags[i] = r.ActivePoint
	}
	assert.Equal(t, []string{"1", "0", "1", "0", "0"}, flags)
}

func TestParse_ActiveColumnWithoutFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.ActiveColumn = 3
	opts.ActivePoints = 2

	tests := []struct {
		name string
		rows [][]string
	}{
		{"column missing", [][]string{
			{"Year", "Oil", "Liquid"},
			{"2019", "1", "2"},
			{"2020", "1", "2"},
			{"2021", "1", "2"},
		}},
		{"no usable flags", [][]string{
			{"Year", "Oil", "Liquid", "Active"},
			{"2019", "1", "2", "yes"},
			{"2020", "1", "2", ""},
			{"2021", "1", "2", "x"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.rows, opts)
			require.NoError(t, err)

			flags := make([]string, len(records))
			for i, r := range records {
				flags[i] = r.ActivePoint
			}
			assert.Equal(t, []string{"0", "1", "1"}, flags)
		})
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"120", 120},
		{" 120.75 ", 120.75},
		{".5", 0.5},
		{"+3", 3},
		{"-2.5e2", -250},
		{"1e400", 0},
		{"Infinity", 0},
		{"NaN", 0},
		{"", 0},
		{"1,234", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseVolume(tt.in), "input %q", tt.in)
	}
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, 2020, parseYear("2020"))
	assert.Equal(t, 2020, parseYear("2020.9"))
	assert.Equal(t, 0, parseYear("FY2020"))
	assert.Equal(t, 0, parseYear(""))
	assert.Equal(t, 0, parseYear("99999999999999999999999"))
}
