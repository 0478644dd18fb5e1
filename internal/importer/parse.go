package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/decline-cli/internal/model"
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Parse converts raw rows into production records. Blank rows are dropped,
// the first remaining row is skipped as a header when opts.HasHeader is set,
// and unparseable numeric cells become 0. Active flags come from
// opts.ActiveColumn when it is set and holds at least one 0/1 flag;
// otherwise the last opts.ActivePoints rows are flagged.
func Parse(rows [][]string, opts Options) ([]model.ProductionRecord, error) {
	var data [][]string
	for _, row := range rows {
		if !isBlankRow(row) {
			data = append(data, row)
		}
	}
	if opts.HasHeader && len(data) > 0 {
		data = data[1:]
	}
	if len(data) == 0 {
		return nil, ErrNoData
	}

	records := make([]model.ProductionRecord, len(data))
	for i, row := range data {
		records[i] = model.ProductionRecord{
			Year:        parseYear(cell(row, opts.YearColumn)),
			Oil:         parseVolume(cell(row, opts.OilColumn)),
			Liquid:      parseVolume(cell(row, opts.LiquidColumn)),
			ActivePoint: model.InactiveFlag,
		}
	}

	if opts.ActiveColumn < 0 || !hasFlags(data, opts.ActiveColumn) {
		return SetActiveLast(records, opts.ActivePoints), nil
	}
	for i, row := range data {
		if strings.TrimSpace(cell(row, opts.ActiveColumn)) == model.ActiveFlag {
			records[i].ActivePoint = model.ActiveFlag
		}
	}
	return records, nil
}

// hasFlags reports whether any row holds a 0/1 flag in column idx.
func hasFlags(rows [][]string, idx int) bool {
	for _, row := range rows {
		switch strings.TrimSpace(cell(row, idx)) {
		case model.ActiveFlag, model.InactiveFlag:
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseYear reads the leading integer of the cell, so "2020.0" is 2020.
func parseYear(s string) int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

// parseVolume reads the leading decimal number of the cell. Missing,
// unparseable and non-finite values become 0.
func parseVolume(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
