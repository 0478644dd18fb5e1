package export

import (
	"io"
	"math"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/message"

	"github.com/sells-group/decline-cli/internal/model"
)

// Sheet names written by BuildWorkbook.
const (
	SheetData        = "Data"
	SheetNS          = "N-S"
	SheetSP          = "S-P"
	SheetM           = "M"
	SheetS           = "S"
	SheetP           = "P"
	SheetK           = "K"
	SheetReserves    = "Reserves"
	SheetResults     = "Results"
	SheetRecoverable = "Recoverable Reserves"
)

// WorkbookOptions configures BuildWorkbook.
type WorkbookOptions struct {
	Language string
}

// BuildWorkbook assembles the input table, every derived series, the
// results and the recoverable reserves summary into one workbook.
func BuildWorkbook(series []model.ProductionRecord, b *model.Bundle, opts WorkbookOptions) (*xlsx.File, error) {
	if b == nil {
		b = &model.Bundle{}
	}
	p := newPrinter(opts.Language)
	wb := &workbook{f: xlsx.NewFile(), header: headerStyle(), body: bodyStyle()}

	wb.table(SheetData, []string{"No", "Year", "Oil", "Liquid", "Waters", "Watercut", "Active Point"}, len(series), func(i int, row *xlsx.Row) {
		r := series[i]
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Oil)
		addFloat(row, r.Liquid)
		addFloat(row, r.Waters())
		row.AddCell().SetFloatWithFormat(round2(model.LiquidChange(series, i)), "0.00")
		row.AddCell().SetString(r.ActivePoint)
	})
	wb.table(SheetNS, []string{"Year", "Liquid", "Delta Liquid", "Relative Delta %"}, len(b.NS), func(i int, row *xlsx.Row) {
		r := b.NS[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Liquid)
		addFloat(row, r.DeltaLiquid)
		addFloat(row, r.RelativeDelta)
	})
	wb.table(SheetSP, []string{"Year", "Oil", "Liquid", "Watercut %"}, len(b.SP), func(i int, row *xlsx.Row) {
		r := b.SP[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Oil)
		addFloat(row, r.Liquid)
		addFloat(row, r.Watercut)
	})
	wb.table(SheetM, []string{"Year", "Oil", "Delta Oil", "Relative Delta Oil %"}, len(b.M), func(i int, row *xlsx.Row) {
		r := b.M[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Oil)
		addFloat(row, r.DeltaOil)
		addFloat(row, r.RelativeDeltaOil)
	})
	wb.table(SheetS, []string{"Year", "Oil", "Liquid", "Waters"}, len(b.S), func(i int, row *xlsx.Row) {
		r := b.S[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Oil)
		addFloat(row, r.Liquid)
		addFloat(row, r.Waters)
	})
	wb.table(SheetP, []string{"Year", "Cumulative Oil", "Cumulative Liquid", "Cumulative Watercut %"}, len(b.P), func(i int, row *xlsx.Row) {
		r := b.P[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.CumulativeOil)
		addFloat(row, r.CumulativeLiquid)
		addFloat(row, r.CumulativeWatercut)
	})
	wb.table(SheetK, []string{"Year", "Watercut %", "Oil Ratio %"}, len(b.K), func(i int, row *xlsx.Row) {
		r := b.K[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Watercut)
		addFloat(row, r.OilRatio)
	})
	wb.table(SheetReserves, []string{"Year", "Vmax", "V fo", "v fw"}, len(b.Reserves), func(i int, row *xlsx.Row) {
		r := b.Reserves[i]
		row.AddCell().SetInt(r.Year)
		addFloat(row, r.Vmax)
		addFloat(row, r.Vfo)
		addFloat(row, r.Vfw)
	})
	wb.table(SheetResults, []string{"Method", "Value"}, len(b.Results), func(i int, row *xlsx.Row) {
		r := b.Results[i]
		row.AddCell().SetString(r.Label)
		addFloat(row, r.Value)
	})
	wb.reserveSummary(p, b)

	if wb.err != nil {
		return nil, wb.err
	}
	return wb.f, nil
}

// SaveWorkbook builds the workbook and writes it to path.
func SaveWorkbook(path string, series []model.ProductionRecord, b *model.Bundle, opts WorkbookOptions) error {
	f, err := BuildWorkbook(series, b, opts)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

// WriteWorkbook builds the workbook and streams it to w.
func WriteWorkbook(w io.Writer, series []model.ProductionRecord, b *model.Bundle, opts WorkbookOptions) error {
	f, err := BuildWorkbook(series, b, opts)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

type workbook struct {
	f      *xlsx.File
	header *xlsx.Style
	body   *xlsx.Style
	err    error
}

func (wb *workbook) sheet(name string) *xlsx.Sheet {
	if wb.err != nil {
		return nil
	}
	sheet, err := wb.f.AddSheet(name)
	if err != nil {
		wb.err = eris.Wrapf(err, "export: add sheet %s", name)
		return nil
	}
	return sheet
}

// table writes a header row and n data rows. Empty series still get a
// sheet with the header only.
func (wb *workbook) table(name string, columns []string, n int, fill func(i int, row *xlsx.Row)) {
	sheet := wb.sheet(name)
	if sheet == nil {
		return
	}
	wb.headerRow(sheet, columns...)
	for i := 0; i < n; i++ {
		fill(i, sheet.AddRow())
	}
}

func (wb *workbook) headerRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		c := row.AddCell()
		c.SetString(v)
		c.SetStyle(wb.header)
	}
}

// reserveSummary writes the two-section recoverable / remaining layout.
// Missing values are written as 0 and rounded to two decimals.
func (wb *workbook) reserveSummary(p *message.Printer, b *model.Bundle) {
	sheet := wb.sheet(SheetRecoverable)
	if sheet == nil {
		return
	}

	section := func(title string, labels []string) {
		wb.headerRow(sheet, p.Sprintf(title), "")
		wb.headerRow(sheet, p.Sprintf(titleParameter), p.Sprintf(titleValue))
		for _, label := range labels {
			v, _ := b.Result(label)
			row := sheet.AddRow()
			name := row.AddCell()
			name.SetString(parameterName(p, label))
			name.SetStyle(wb.body)
			value := row.AddCell()
			value.SetFloatWithFormat(round2(v), "0.00")
			value.SetStyle(wb.body)
		}
	}

	section(titleRecoverable, model.RecoverableLabels)
	blank := sheet.AddRow()
	blank.AddCell()
	blank.AddCell()
	section(titleRemaining, model.RemainingLabels)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// addFloat writes v, leaving the cell empty when v is not finite.
func addFloat(row *xlsx.Row, v float64) {
	c := row.AddCell()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	c.SetFloat(v)
}

func headerStyle() *xlsx.Style {
	s := bodyStyle()
	s.Font.Bold = true
	s.Fill = *xlsx.NewFill("solid", "FFCCCCCC", "FFCCCCCC")
	s.ApplyFont = true
	s.ApplyFill = true
	return s
}

func bodyStyle() *xlsx.Style {
	s := xlsx.NewStyle()
	s.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	s.ApplyBorder = true
	return s
}
