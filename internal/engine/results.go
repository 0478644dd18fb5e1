package engine

import (
	"github.com/sells-group/decline-cli/internal/model"
)

// Results averages each method's characteristic field over the derived
// rows whose year belongs to an active record. Every derived row with a
// matching year participates, so duplicate years are all counted. Returns
// nil when no record is active; non-finite means are dropped.
func Results(series []model.ProductionRecord, b *model.Bundle) []model.ResultEntry {
	years := model.ActiveYears(series)
	if len(years) == 0 || b == nil {
		return nil
	}

	means := []struct {
		label string
		value float64
	}{
		{model.LabelNS, activeMean(b.NS, years, func(r model.NSRecord) (int, float64) {
			return r.Year, r.RelativeDelta
		})},
		{model.LabelSP, activeMean(b.SP, years, func(r model.SPRecord) (int, float64) {
			return r.Year, r.Watercut
		})},
		{model.LabelM, activeMean(b.M, years, func(r model.MRecord) (int, float64) {
			return r.Year, r.RelativeDeltaOil
		})},
		{model.LabelS, activeMean(b.S, years, func(r model.SRecord) (int, float64) {
			return r.Year, percentOf(r.Waters, r.Liquid)
		})},
		{model.LabelP, activeMean(b.P, years, func(r model.PRecord) (int, float64) {
			return r.Year, r.CumulativeWatercut
		})},
		{model.LabelK, activeMean(b.K, years, func(r model.KRecord) (int, float64) {
			return r.Year, r.OilRatio
		})},
	}

	var out []model.ResultEntry
	for _, m := range means {
		out = appendFinite(out, model.ResultEntry{Label: m.label, Value: m.value}, m.value)
	}
	return out
}

// activeMean filters rows to the active years and averages the extracted
// field. An empty selection yields NaN.
func activeMean[T any](rows []T, years map[int]struct{}, field func(T) (int, float64)) float64 {
	values := make([]float64, 0, len(years))
	for _, row := range rows {
		year, v := field(row)
		if _, ok := years[year]; ok {
			values = append(values, v)
		}
	}
	return mean(values)
}
