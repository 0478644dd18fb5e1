package importer

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX parses an XLSX workbook and returns the selected sheet's rows
// as string slices.
func ReadXLSX(data []byte, opts Options) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open xlsx")
	}

	sheet, err := selectSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func selectSheet(f *xlsx.File, opts Options) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("importer: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, eris.New("importer: workbook has no sheets")
	}
	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("importer: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

// rowToStrings renders each cell as text. Numeric cells yield their stored
// value rather than the number-format rendering, so "#,##0" or "0%" styled
// volumes keep full precision.
func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if cell.Type() == xlsx.CellTypeNumeric {
			if v, err := cell.Float(); err == nil {
				cells[j] = strconv.FormatFloat(v, 'f', -1, 64)
				continue
			}
		}
		cells[j] = cell.String()
	}
	return cells
}
