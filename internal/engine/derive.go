package engine

import (
	"github.com/sells-group/decline-cli/internal/model"
)

// NS derives the liquid decline series. RelativeDelta is left non-finite
// when the previous liquid volume is zero.
func NS(series []model.ProductionRecord) []model.NSRecord {
	out := make([]model.NSRecord, len(series))
	for i, row := range series {
		rec := model.NSRecord{Year: row.Year, Liquid: row.Liquid}
		if i > 0 {
			prev := series[i-1].Liquid
			rec.DeltaLiquid = row.Liquid - prev
			rec.RelativeDelta = percentOf(rec.DeltaLiquid, prev)
		}
		out[i] = rec
	}
	return out
}

// SP derives the instantaneous watercut series. Zero liquid gives 0.
func SP(series []model.ProductionRecord) []model.SPRecord {
	out := make([]model.SPRecord, len(series))
	for i, row := range series {
		out[i] = model.SPRecord{
			Year:     row.Year,
			Oil:      row.Oil,
			Liquid:   row.Liquid,
			Watercut: finiteOr(percentOf(row.Liquid-row.Oil, row.Liquid), 0),
		}
	}
	return out
}

// M derives the oil decline series, the oil counterpart of NS.
func M(series []model.ProductionRecord) []model.MRecord {
	out := make([]model.MRecord, len(series))
	for i, row := range series {
		rec := model.MRecord{Year: row.Year, Oil: row.Oil}
		if i > 0 {
			prev := series[i-1].Oil
			rec.DeltaOil = row.Oil - prev
			rec.RelativeDeltaOil = percentOf(rec.DeltaOil, prev)
		}
		out[i] = rec
	}
	return out
}

// S derives the produced water series, floored at zero.
func S(series []model.ProductionRecord) []model.SRecord {
	out := make([]model.SRecord, len(series))
	for i, row := range series {
		out[i] = model.SRecord{
			Year:   row.Year,
			Oil:    row.Oil,
			Liquid: row.Liquid,
			Waters: max(0, row.Liquid-row.Oil),
		}
	}
	return out
}

// P derives the cumulative watercut series as a left fold over the
// (oil, liquid) pairs. CumulativeWatercut is not sanitised.
func P(series []model.ProductionRecord) []model.PRecord {
	out := make([]model.PRecord, len(series))
	var cumOil, cumLiquid float64
	for i, row := range series {
		cumOil += row.Oil
		cumLiquid += row.Liquid
		out[i] = model.PRecord{
			Year:               row.Year,
			CumulativeOil:      cumOil,
			CumulativeLiquid:   cumLiquid,
			CumulativeWatercut: percentOf(cumLiquid-cumOil, cumLiquid),
		}
	}
	return out
}

// K derives the oil fraction series. When the watercut is undefined the
// watercut is 0 and the oil ratio is 100.
func K(series []model.ProductionRecord) []model.KRecord {
	out := make([]model.KRecord, len(series))
	for i, row := range series {
		watercut := percentOf(row.Liquid-row.Oil, row.Liquid)
		rec := model.KRecord{Year: row.Year, Watercut: 0, OilRatio: 100}
		if isFinite(watercut) {
			rec.Watercut = watercut
			rec.OilRatio = 100 - watercut
		}
		out[i] = rec
	}
	return out
}
