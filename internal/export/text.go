package export

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sells-group/decline-cli/internal/model"
)

// TextOptions configures RenderText.
type TextOptions struct {
	Language string // BCP 47 tag; defaults to English
	Series   bool   // also print the input table
}

// FormatNumber formats v with three decimals and drops an all-zero
// fraction, so 12.0004 prints as "12". Digits are never grouped.
// Non-finite values print as "—".
func FormatNumber(p *message.Printer, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	rounded := math.Round(v*1000) / 1000
	if rounded == math.Trunc(rounded) && math.Abs(rounded) < 1e15 {
		return p.Sprint(number.Decimal(int64(rounded), number.NoSeparator()))
	}
	return formatFixed(p, rounded, 3)
}

// formatFixed prints v with exactly scale decimals and no digit grouping,
// using the printer's decimal separator.
func formatFixed(p *message.Printer, v float64, scale int) string {
	return p.Sprint(number.Decimal(v, number.NoSeparator(), number.Scale(scale)))
}

// RenderText writes the bundle as aligned plain-text tables.
func RenderText(w io.Writer, series []model.ProductionRecord, b *model.Bundle, opts TextOptions) error {
	p := newPrinter(opts.Language)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if b.IsEmpty() {
		fmt.Fprintln(tw, p.Sprintf(titleNoData))
		return flush(tw)
	}

	if opts.Series {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Sprintf(titleYear), p.Sprintf(titleOil), p.Sprintf(titleLiquid),
			p.Sprintf(titleWaters), p.Sprintf(titleWatercut), p.Sprintf(titleActive))
		for i, r := range series {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.Year,
				FormatNumber(p, r.Oil), FormatNumber(p, r.Liquid),
				FormatNumber(p, r.Waters()),
				formatFixed(p, model.LiquidChange(series, i), 2), r.ActivePoint)
		}
		fmt.Fprintln(tw)
	}

	if len(b.Results) == 0 {
		fmt.Fprintln(tw, p.Sprintf(titleNoResults))
		return flush(tw)
	}

	fmt.Fprintln(tw, p.Sprintf(titleResults))
	fmt.Fprintf(tw, "%s\t%s\n", p.Sprintf(titleMethod), p.Sprintf(titleValue))
	for _, r := range b.Methods() {
		fmt.Fprintf(tw, "%s\t%s\n", r.Label, FormatNumber(p, r.Value))
	}

	for _, section := range []struct {
		title  string
		labels []string
	}{
		{titleRecoverable, model.RecoverableLabels},
		{titleRemaining, model.RemainingLabels},
	} {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, p.Sprintf(section.title))
		fmt.Fprintf(tw, "%s\t%s\n", p.Sprintf(titleParameter), p.Sprintf(titleValue))
		for _, label := range section.labels {
			v, ok := b.Result(label)
			value := "—"
			if ok {
				value = FormatNumber(p, v)
			}
			fmt.Fprintf(tw, "%s\t%s\n", parameterName(p, label), value)
		}
	}

	return flush(tw)
}

func flush(tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "export: flush text")
	}
	return nil
}
