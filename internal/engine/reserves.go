package engine

import (
	"github.com/sells-group/decline-cli/internal/model"
)

// RecoveryFactors are the fractions of produced volume assumed ultimately
// recoverable.
type RecoveryFactors struct {
	Liquid float64 `yaml:"liquid" mapstructure:"liquid"` // Vmax
	Oil    float64 `yaml:"oil" mapstructure:"oil"`       // V fo
	Water  float64 `yaml:"water" mapstructure:"water"`   // v fw
}

// Default recovery factors.
const (
	DefaultLiquidRecovery = 0.90
	DefaultOilRecovery    = 0.85
	DefaultWaterRecovery  = 0.95
)

// DefaultRecoveryFactors returns the standard 0.90 / 0.85 / 0.95 factors.
func DefaultRecoveryFactors() RecoveryFactors {
	return RecoveryFactors{
		Liquid: DefaultLiquidRecovery,
		Oil:    DefaultOilRecovery,
		Water:  DefaultWaterRecovery,
	}
}

// estimate applies the factors to one (liquid, oil) pair.
func (f RecoveryFactors) estimate(liquid, oil float64) (vmax, vfo, vfw float64) {
	return liquid * f.Liquid, oil * f.Oil, (liquid - oil) * f.Water
}

// Reserves estimates recoverable volumes for every year of the series.
func Reserves(series []model.ProductionRecord, f RecoveryFactors) []model.ReserveRecord {
	out := make([]model.ReserveRecord, len(series))
	for i, row := range series {
		vmax, vfo, vfw := f.estimate(row.Liquid, row.Oil)
		out[i] = model.ReserveRecord{Year: row.Year, Vmax: vmax, Vfo: vfo, Vfw: vfw}
	}
	return out
}

// ReserveResults builds the aggregate and remaining reserve entries. The
// aggregate estimate uses the averages over the active records; the
// cumulative actuals used for the remaining volumes span the whole series.
// Returns nil when no record is active.
func ReserveResults(series []model.ProductionRecord, f RecoveryFactors) []model.ResultEntry {
	active := model.ActiveRecords(series)
	if len(active) == 0 {
		return nil
	}

	var sumLiquid, sumOil float64
	for _, r := range active {
		sumLiquid += r.Liquid
		sumOil += r.Oil
	}
	n := float64(len(active))
	avgLiquid := sumLiquid / n
	avgOil := sumOil / n
	vmax, vfo, vfw := f.estimate(avgLiquid, avgOil)

	var cumLiquid, cumOil float64
	for _, r := range series {
		cumLiquid += r.Liquid
		cumOil += r.Oil
	}
	cumWater := cumLiquid - cumOil

	entries := []model.ResultEntry{
		{Label: model.LabelVmax, Value: vmax},
		{Label: model.LabelVfo, Value: vfo},
		{Label: model.LabelVfw, Value: vfw},
		{Label: model.LabelRemainingVmax, Value: vmax - cumLiquid},
		{Label: model.LabelRemainingVfo, Value: vfo - cumOil},
		{Label: model.LabelRemainingVfw, Value: vfw - cumWater},
	}

	var out []model.ResultEntry
	for _, e := range entries {
		out = appendFinite(out, e, e.Value)
	}
	return out
}
