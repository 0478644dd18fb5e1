package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decline-cli/internal/model"
)

func bundleFor(series []model.ProductionRecord) *model.Bundle {
	return &model.Bundle{
		NS: NS(series),
		SP: SP(series),
		M:  M(series),
		S:  S(series),
		P:  P(series),
		K:  K(series),
	}
}

func TestResults_AveragesActiveYears(t *testing.T) {
	series := history()
	b := bundleFor(series)

	results := Results(series, b)
	require.Len(t, results, 6)
	assert.Equal(t, model.MethodLabels, resultLabels(results))

	// Active years are 2018-2020 (indexes 3..5).
	var wantSP, wantK float64
	for _, r := range b.SP[3:] {
		wantSP += r.Watercut
	}
	for _, r := range b.K[3:] {
		wantK += r.OilRatio
	}
	assert.InDelta(t, wantSP/3, results[1].Value, 1e-9)
	assert.InDelta(t, wantK/3, results[5].Value, 1e-9)

	// S recomputes waters over liquid instead of reading a stored field.
	var wantS float64
	for _, r := range b.S[3:] {
		wantS += r.Waters / r.Liquid * 100
	}
	assert.InDelta(t, wantS/3, results[3].Value, 1e-9)
}

func TestResults_NoActive(t *testing.T) {
	series := []model.ProductionRecord{rec(2020, 1, 2, false)}
	assert.Nil(t, Results(series, bundleFor(series)))
	assert.Nil(t, ReserveResults(series, DefaultRecoveryFactors()))
}

func TestResults_NilBundle(t *testing.T) {
	assert.Nil(t, Results([]model.ProductionRecord{rec(2020, 1, 2, true)}, nil))
}

func TestResults_DropsNonFiniteMeans(t *testing.T) {
	// Liquid drops to zero before the active year, so N/S divides by zero.
	series := []model.ProductionRecord{
		rec(2020, 0, 0, false),
		rec(2021, 10, 40, true),
	}

	results := Results(series, bundleFor(series))
	labels := resultLabels(results)
	assert.NotContains(t, labels, model.LabelNS)
	assert.NotContains(t, labels, model.LabelM)
	assert.Contains(t, labels, model.LabelSP)
	assert.Contains(t, labels, model.LabelP)
	for _, r := range results {
		assert.False(t, math.IsNaN(r.Value) || math.IsInf(r.Value, 0))
	}
}

func TestResults_PartialDerivedSeries(t *testing.T) {
	series := []model.ProductionRecord{rec(2020, 10, 40, true)}
	b := &model.Bundle{SP: SP(series)}

	// Methods without a derived series average an empty selection and drop.
	results := Results(series, b)
	require.Len(t, results, 1)
	assert.Equal(t, model.LabelSP, results[0].Label)
	assert.InDelta(t, 75.0, results[0].Value, 1e-9)
}

func TestReserveResults_ActiveAverageAgainstFullCumulative(t *testing.T) {
	series := []model.ProductionRecord{
		rec(2019, 200, 300, false),
		rec(2020, 100, 200, true),
		rec(2021, 80, 180, true),
	}

	results := ReserveResults(series, DefaultRecoveryFactors())
	require.Len(t, results, 6)

	// Averages over active rows: liquid 190, oil 90, water 100.
	// Cumulative actuals over all rows: liquid 680, oil 380, water 300.
	want := []float64{
		190 * 0.90,
		90 * 0.85,
		100 * 0.95,
		190*0.90 - 680,
		90*0.85 - 380,
		100*0.95 - 300,
	}
	labels := append(append([]string{}, model.RecoverableLabels...), model.RemainingLabels...)
	for i, r := range results {
		assert.Equal(t, labels[i], r.Label)
		assert.InDelta(t, want[i], r.Value, 1e-9, r.Label)
	}
}

func TestReserveResults_DropsNonFinite(t *testing.T) {
	series := []model.ProductionRecord{rec(2020, 10, math.Inf(1), true)}

	results := ReserveResults(series, DefaultRecoveryFactors())
	labels := resultLabels(results)
	assert.NotContains(t, labels, model.LabelVmax)
	assert.NotContains(t, labels, model.LabelRemainingVmax)
	assert.Contains(t, labels, model.LabelVfo)
}

func TestReserves_PerYear(t *testing.T) {
	r := Reserves([]model.ProductionRecord{rec(2020, 150, 200, false)}, DefaultRecoveryFactors())
	require.Len(t, r, 1)
	assert.Equal(t, 2020, r[0].Year)
	assert.InDelta(t, 180.0, r[0].Vmax, 1e-9)
	assert.InDelta(t, 127.5, r[0].Vfo, 1e-9)
	assert.InDelta(t, 47.5, r[0].Vfw, 1e-9)
}

func TestNumericHelpers(t *testing.T) {
	assert.True(t, math.IsNaN(mean(nil)))
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 1e-12)
	assert.Equal(t, 7.0, finiteOr(math.NaN(), 7))
	assert.Equal(t, 7.0, finiteOr(math.Inf(-1), 7))
	assert.Equal(t, 3.0, finiteOr(3, 7))
	assert.True(t, math.IsInf(percentOf(1, 0), 1))
	assert.InDelta(t, 50.0, percentOf(1, 2), 1e-12)

	var entries []model.ResultEntry
	entries = appendFinite(entries, model.ResultEntry{Label: "a", Value: math.NaN()}, math.NaN())
	entries = appendFinite(entries, model.ResultEntry{Label: "b", Value: 1}, 1)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Label)
}
