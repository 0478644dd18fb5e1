// Package model defines the production history records and the derived
// series produced by the decline analysis engine.
package model

import "math"

// Active point flag values carried on ProductionRecord.ActivePoint.
const (
	ActiveFlag   = "1"
	InactiveFlag = "0"
)

// ProductionRecord is one period of a well's production history.
type ProductionRecord struct {
	Year        int     `json:"year" yaml:"year" csv:"year"`
	Oil         float64 `json:"oil" yaml:"oil" csv:"oil"`
	Liquid      float64 `json:"liquid" yaml:"liquid" csv:"liquid"`
	ActivePoint string  `json:"active_point" yaml:"active_point" csv:"active_point"`
}

// IsActive reports whether the record participates in the averaged results.
func (r ProductionRecord) IsActive() bool {
	return r.ActivePoint == ActiveFlag
}

// Waters returns the absolute produced water volume for display.
func (r ProductionRecord) Waters() float64 {
	return math.Abs(r.Liquid - r.Oil)
}

// ActiveRecords returns the records flagged active, in input order.
func ActiveRecords(series []ProductionRecord) []ProductionRecord {
	var active []ProductionRecord
	for _, r := range series {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	return active
}

// ActiveYears indexes the years of all active records.
func ActiveYears(series []ProductionRecord) map[int]struct{} {
	years := make(map[int]struct{})
	for _, r := range series {
		if r.IsActive() {
			years[r.Year] = struct{}{}
		}
	}
	return years
}

// LiquidChange returns the percentage change of liquid production from the
// previous record, shown as the watercut column of the input table. The
// first record and records following a non-positive liquid volume give 0.
func LiquidChange(series []ProductionRecord, i int) float64 {
	if i <= 0 || i >= len(series) {
		return 0
	}
	prev := series[i-1].Liquid
	if prev <= 0 {
		return 0
	}
	return (series[i].Liquid - prev) / prev * 100
}
