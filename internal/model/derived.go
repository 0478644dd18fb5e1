package model

import (
	"encoding/json"
	"math"
)

// NSRecord is one row of the N/S (liquid decline) series.
type NSRecord struct {
	Year          int     `json:"year" yaml:"year" csv:"year"`
	Liquid        float64 `json:"liquid" yaml:"liquid" csv:"liquid"`
	DeltaLiquid   float64 `json:"delta_liquid" yaml:"delta_liquid" csv:"delta_liquid"`
	RelativeDelta float64 `json:"relative_delta" yaml:"relative_delta" csv:"relative_delta"` // may be non-finite
}

// MarshalJSON writes a non-finite RelativeDelta as null.
func (r NSRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year          int      `json:"year"`
		Liquid        float64  `json:"liquid"`
		DeltaLiquid   float64  `json:"delta_liquid"`
		RelativeDelta *float64 `json:"relative_delta"`
	}{r.Year, r.Liquid, r.DeltaLiquid, finitePtr(r.RelativeDelta)})
}

// SPRecord is one row of the S/P (instantaneous watercut) series.
type SPRecord struct {
	Year     int     `json:"year" yaml:"year" csv:"year"`
	Oil      float64 `json:"oil" yaml:"oil" csv:"oil"`
	Liquid   float64 `json:"liquid" yaml:"liquid" csv:"liquid"`
	Watercut float64 `json:"watercut" yaml:"watercut" csv:"watercut"`
}

// MRecord is one row of the M (oil decline) series.
type MRecord struct {
	Year             int     `json:"year" yaml:"year" csv:"year"`
	Oil              float64 `json:"oil" yaml:"oil" csv:"oil"`
	DeltaOil         float64 `json:"delta_oil" yaml:"delta_oil" csv:"delta_oil"`
	RelativeDeltaOil float64 `json:"relative_delta_oil" yaml:"relative_delta_oil" csv:"relative_delta_oil"` // may be non-finite
}

// MarshalJSON writes a non-finite RelativeDeltaOil as null.
func (r MRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year             int      `json:"year"`
		Oil              float64  `json:"oil"`
		DeltaOil         float64  `json:"delta_oil"`
		RelativeDeltaOil *float64 `json:"relative_delta_oil"`
	}{r.Year, r.Oil, r.DeltaOil, finitePtr(r.RelativeDeltaOil)})
}

// SRecord is one row of the S (water volume) series.
type SRecord struct {
	Year   int     `json:"year" yaml:"year" csv:"year"`
	Oil    float64 `json:"oil" yaml:"oil" csv:"oil"`
	Liquid float64 `json:"liquid" yaml:"liquid" csv:"liquid"`
	Waters float64 `json:"waters" yaml:"waters" csv:"waters"`
}

// PRecord is one row of the P (cumulative watercut) series.
type PRecord struct {
	Year               int     `json:"year" yaml:"year" csv:"year"`
	CumulativeOil      float64 `json:"cumulative_oil" yaml:"cumulative_oil" csv:"cumulative_oil"`
	CumulativeLiquid   float64 `json:"cumulative_liquid" yaml:"cumulative_liquid" csv:"cumulative_liquid"`
	CumulativeWatercut float64 `json:"cumulative_watercut" yaml:"cumulative_watercut" csv:"cumulative_watercut"` // may be non-finite
}

// MarshalJSON writes a non-finite CumulativeWatercut as null.
func (r PRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year               int      `json:"year"`
		CumulativeOil      float64  `json:"cumulative_oil"`
		CumulativeLiquid   float64  `json:"cumulative_liquid"`
		CumulativeWatercut *float64 `json:"cumulative_watercut"`
	}{r.Year, r.CumulativeOil, r.CumulativeLiquid, finitePtr(r.CumulativeWatercut)})
}

// KRecord is one row of the K (oil fraction) series.
type KRecord struct {
	Year     int     `json:"year" yaml:"year" csv:"year"`
	Watercut float64 `json:"watercut" yaml:"watercut" csv:"watercut"`
	OilRatio float64 `json:"oil_ratio" yaml:"oil_ratio" csv:"oil_ratio"`
}

// ReserveRecord is the per-year recoverable reserve estimate.
type ReserveRecord struct {
	Year int     `json:"year" yaml:"year" csv:"year"`
	Vmax float64 `json:"vmax" yaml:"vmax" csv:"vmax"`
	Vfo  float64 `json:"vfo" yaml:"vfo" csv:"vfo"`
	Vfw  float64 `json:"vfw" yaml:"vfw" csv:"vfw"`
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
