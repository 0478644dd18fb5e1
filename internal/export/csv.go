package export

import (
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/decline-cli/internal/model"
)

// Series names accepted by WriteSeriesCSV.
const (
	SeriesNS       = "ns"
	SeriesSP       = "sp"
	SeriesM        = "m"
	SeriesS        = "s"
	SeriesP        = "p"
	SeriesK        = "k"
	SeriesReserves = "reserves"
	SeriesResults  = "results"
)

// SeriesNames lists every series WriteSeriesCSV can write.
var SeriesNames = []string{SeriesNS, SeriesSP, SeriesM, SeriesS, SeriesP, SeriesK, SeriesReserves, SeriesResults}

// ErrEmptySeries is returned when the requested series holds no rows.
var ErrEmptySeries = eris.New("export: series is empty")

// NormalizeSeries maps user input such as "N/S" or "NS" onto a series name.
func NormalizeSeries(name string) (string, bool) {
	key := strings.ToLower(strings.NewReplacer("/", "", "-", "", "_", "", " ", "").Replace(strings.TrimSpace(name)))
	for _, s := range SeriesNames {
		if key == s {
			return s, true
		}
	}
	return "", false
}

// WriteSeriesCSV writes one derived series of the bundle as CSV with a
// header row.
func WriteSeriesCSV(w io.Writer, b *model.Bundle, series string) error {
	name, ok := NormalizeSeries(series)
	if !ok {
		return eris.Errorf("export: unknown series %q", series)
	}
	if b == nil {
		return eris.Wrapf(ErrEmptySeries, "%s", name)
	}

	var v any
	var n int
	switch name {
	case SeriesNS:
		v, n = b.NS, len(b.NS)
	case SeriesSP:
		v, n = b.SP, len(b.SP)
	case SeriesM:
		v, n = b.M, len(b.M)
	case SeriesS:
		v, n = b.S, len(b.S)
	case SeriesP:
		v, n = b.P, len(b.P)
	case SeriesK:
		v, n = b.K, len(b.K)
	case SeriesReserves:
		v, n = b.Reserves, len(b.Reserves)
	case SeriesResults:
		v, n = b.Results, len(b.Results)
	}
	if n == 0 {
		return eris.Wrapf(ErrEmptySeries, "%s", name)
	}

	data, err := csvutil.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "export: marshal %s csv", name)
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrapf(err, "export: write %s csv", name)
	}
	return nil
}

// WriteResultsCSV writes the labelled results as CSV.
func WriteResultsCSV(w io.Writer, b *model.Bundle) error {
	return WriteSeriesCSV(w, b, SeriesResults)
}
