package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decline-cli/internal/model"
)

func rec(year int, oil, liquid float64, active bool) model.ProductionRecord {
	flag := model.InactiveFlag
	if active {
		flag = model.ActiveFlag
	}
	return model.ProductionRecord{Year: year, Oil: oil, Liquid: liquid, ActivePoint: flag}
}

func history() []model.ProductionRecord {
	return []model.ProductionRecord{
		rec(2015, 120, 140, false),
		rec(2016, 110, 150, false),
		rec(2017, 104, 158, false),
		rec(2018, 96, 165, true),
		rec(2019, 90, 171, true),
		rec(2020, 81, 176, true),
	}
}

func resultLabels(entries []model.ResultEntry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

func TestCompute_EmptySeries(t *testing.T) {
	for _, series := range [][]model.ProductionRecord{nil, {}} {
		b, err := ComputeAll(series)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.True(t, b.IsEmpty())
		assert.Nil(t, b.NS)
		assert.Nil(t, b.Results)
		assert.Nil(t, b.Reserves)
	}
}

func TestCompute_SeriesAlignment(t *testing.T) {
	series := history()
	b, err := ComputeAll(series)
	require.NoError(t, err)

	n := len(series)
	require.Len(t, b.NS, n)
	require.Len(t, b.SP, n)
	require.Len(t, b.M, n)
	require.Len(t, b.S, n)
	require.Len(t, b.P, n)
	require.Len(t, b.K, n)
	require.Len(t, b.Reserves, n)

	for i, r := range series {
		assert.Equal(t, r.Year, b.NS[i].Year)
		assert.Equal(t, r.Year, b.SP[i].Year)
		assert.Equal(t, r.Year, b.M[i].Year)
		assert.Equal(t, r.Year, b.S[i].Year)
		assert.Equal(t, r.Year, b.P[i].Year)
		assert.Equal(t, r.Year, b.K[i].Year)
		assert.Equal(t, r.Year, b.Reserves[i].Year)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	series := history()

	first, err := ComputeAll(series)
	require.NoError(t, err)
	second, err := ComputeAll(series)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Degenerate input carries NaN, which DeepEqual never matches; compare
	// the printed form instead.
	zero := []model.ProductionRecord{rec(2020, 0, 0, true), rec(2021, 0, 0, true)}
	a, err := ComputeAll(zero)
	require.NoError(t, err)
	c, err := ComputeAll(zero)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%+v", *a), fmt.Sprintf("%+v", *c))
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	series := history()
	snapshot := append([]model.ProductionRecord(nil), series...)

	_, err := ComputeAll(series)
	require.NoError(t, err)
	assert.Equal(t, snapshot, series)
}

func TestCompute_TwoRecordScenario(t *testing.T) {
	series := []model.ProductionRecord{
		{Year: 2020, Oil: 100, Liquid: 120, ActivePoint: "0"},
		{Year: 2021, Oil: 90, Liquid: 130, ActivePoint: "1"},
	}

	b, err := ComputeAll(series)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, b.NS[1].DeltaLiquid, 1e-9)
	assert.InDelta(t, 8.333, b.NS[1].RelativeDelta, 1e-3)
	assert.InDelta(t, 30.769, b.SP[1].Watercut, 1e-3)

	var nsCount, spCount int
	for _, r := range b.Results {
		switch r.Label {
		case model.LabelNS:
			nsCount++
		case model.LabelSP:
			spCount++
		}
	}
	assert.Equal(t, 1, nsCount)
	assert.Equal(t, 1, spCount)

	// A single active record averages to its own values.
	ns, ok := b.Result(model.LabelNS)
	require.True(t, ok)
	assert.InDelta(t, b.NS[1].RelativeDelta, ns, 1e-12)
	sp, ok := b.Result(model.LabelSP)
	require.True(t, ok)
	assert.InDelta(t, b.SP[1].Watercut, sp, 1e-12)

	m, _ := b.Result(model.LabelM)
	assert.InDelta(t, -10.0, m, 1e-9)
	s, _ := b.Result(model.LabelS)
	assert.InDelta(t, 30.769, s, 1e-3)
	p, _ := b.Result(model.LabelP)
	assert.InDelta(t, 24.0, p, 1e-9) // (250 - 190) / 250
	k, _ := b.Result(model.LabelK)
	assert.InDelta(t, 69.231, k, 1e-3)

	assert.Equal(t, []string{
		"N/S", "S/P", "M", "S", "P", "K",
		"Vmax", "V fo", "v fw", "Remaining Vmax", "Remaining V fo", "Remaining v fw",
	}, resultLabels(b.Results))
}

func TestCompute_AllZeroLiquid(t *testing.T) {
	series := []model.ProductionRecord{
		rec(2020, 0, 0, true),
		rec(2021, 0, 0, true),
		rec(2022, 0, 0, false),
	}

	b, err := ComputeAll(series)
	require.NoError(t, err)

	for _, r := range b.SP {
		assert.Equal(t, 0.0, r.Watercut)
	}
	for _, r := range b.K {
		assert.Equal(t, 0.0, r.Watercut)
		assert.Equal(t, 100.0, r.OilRatio)
	}
	for _, r := range b.Results {
		assert.False(t, math.IsNaN(r.Value) || math.IsInf(r.Value, 0), "result %s is not finite", r.Label)
	}

	sp, ok := b.Result(model.LabelSP)
	require.True(t, ok)
	assert.Equal(t, 0.0, sp)
	k, ok := b.Result(model.LabelK)
	require.True(t, ok)
	assert.Equal(t, 100.0, k)

	// Unsanitised methods degenerate and are dropped from the results.
	for _, label := range []string{model.LabelNS, model.LabelM, model.LabelS, model.LabelP} {
		_, ok := b.Result(label)
		assert.False(t, ok, "expected %s to be dropped", label)
	}
}

func TestCompute_NoActivePoints(t *testing.T) {
	series := []model.ProductionRecord{rec(2020, 100, 120, false), rec(2021, 90, 130, false)}

	b, err := ComputeAll(series)
	require.NoError(t, err)
	assert.Nil(t, b.Results)
	assert.Len(t, b.NS, 2)
	assert.Len(t, b.Reserves, 2)
}

func TestCompute_ReserveScenario(t *testing.T) {
	b, err := ComputeAll([]model.ProductionRecord{rec(2020, 150, 200, true)})
	require.NoError(t, err)

	require.Len(t, b.Reserves, 1)
	assert.InDelta(t, 180.0, b.Reserves[0].Vmax, 1e-9)
	assert.InDelta(t, 127.5, b.Reserves[0].Vfo, 1e-9)
	assert.InDelta(t, 47.5, b.Reserves[0].Vfw, 1e-9)

	want := map[string]float64{
		model.LabelVmax:          180,
		model.LabelVfo:           127.5,
		model.LabelVfw:           47.5,
		model.LabelRemainingVmax: -20,
		model.LabelRemainingVfo:  -22.5,
		model.LabelRemainingVfw:  -2.5,
	}
	for label, v := range want {
		got, ok := b.Result(label)
		require.True(t, ok, label)
		assert.InDelta(t, v, got, 1e-9, label)
	}
}

func TestCompute_CustomRecoveryFactors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Recovery = RecoveryFactors{Liquid: 1, Oil: 0.5, Water: 0}

	b, err := New(cfg).Compute([]model.ProductionRecord{rec(2020, 150, 200, true)})
	require.NoError(t, err)

	assert.InDelta(t, 200.0, b.Reserves[0].Vmax, 1e-9)
	assert.InDelta(t, 75.0, b.Reserves[0].Vfo, 1e-9)
	assert.InDelta(t, 0.0, b.Reserves[0].Vfw, 1e-9)
}

func TestCompute_MaxRecords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecords = 2

	_, err := New(cfg).Compute(history())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyRecords))

	cfg.MaxRecords = 0
	b, err := New(cfg).Compute(history())
	require.NoError(t, err)
	assert.Len(t, b.NS, 6)
}

func TestCompute_DuplicateYears(t *testing.T) {
	series := []model.ProductionRecord{
		rec(2020, 100, 100, false),
		rec(2020, 50, 100, true),
		rec(2021, 40, 100, false),
	}

	t.Run("match all duplicates", func(t *testing.T) {
		b, err := ComputeAll(series)
		require.NoError(t, err)

		// Both 2020 rows join the active year: (0 + 50) / 2.
		sp, ok := b.Result(model.LabelSP)
		require.True(t, ok)
		assert.InDelta(t, 25.0, sp, 1e-9)
	})

	t.Run("strict rejects", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StrictYears = true

		_, err := New(cfg).Compute(series)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateYear))
		assert.Contains(t, err.Error(), "2020")
	})

	t.Run("strict accepts unique unsorted years", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StrictYears = true

		b, err := New(cfg).Compute([]model.ProductionRecord{rec(2021, 1, 2, true), rec(2019, 1, 2, true)})
		require.NoError(t, err)
		assert.Len(t, b.NS, 2)
	})
}

func TestCompute_Concurrent(t *testing.T) {
	e := New(DefaultConfig())
	series := history()
	want, err := e.Compute(series)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]*model.Bundle, 8)
	for i := range got {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = e.Compute(series)
		}()
	}
	wg.Wait()

	for _, b := range got {
		assert.Equal(t, want, b)
	}
}

func TestEngine_Config(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg, New(cfg).Config())
	assert.Equal(t, DefaultMaxRecords, cfg.MaxRecords)
	assert.False(t, cfg.StrictYears)
}
