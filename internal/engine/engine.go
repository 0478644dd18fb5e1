// Package engine derives the six decline-analysis series, the active-point
// results and the recoverable reserve estimates from a production history.
//
// The engine is a pure function of its input: it never mutates the series
// it is given and allocates fresh output on every call, so one Engine may be
// shared across goroutines.
package engine

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/decline-cli/internal/model"
)

// DefaultMaxRecords bounds the series length accepted by Compute.
const DefaultMaxRecords = 10000

var (
	// ErrTooManyRecords is returned when the series exceeds Config.MaxRecords.
	ErrTooManyRecords = eris.New("engine: too many records")
	// ErrDuplicateYear is returned in strict mode when a year repeats.
	ErrDuplicateYear = eris.New("engine: duplicate year")
)

// Config controls a single Engine.
type Config struct {
	Recovery RecoveryFactors `yaml:"recovery" mapstructure:"recovery"`
	// MaxRecords caps the input length. Zero disables the cap.
	MaxRecords int `yaml:"max_records" mapstructure:"max_records"`
	// StrictYears rejects series with repeated years instead of joining
	// every duplicate into the active averages.
	StrictYears bool `yaml:"strict_years" mapstructure:"strict_years"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Recovery:   DefaultRecoveryFactors(),
		MaxRecords: DefaultMaxRecords,
	}
}

// Engine computes metric bundles.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ComputeAll runs an Engine with DefaultConfig over the series.
func ComputeAll(series []model.ProductionRecord) (*model.Bundle, error) {
	return New(DefaultConfig()).Compute(series)
}

// Compute derives the full metrics bundle for the series. An empty series
// yields an empty bundle. Errors come only from input validation; numeric
// degeneracies never abort the computation.
func (e *Engine) Compute(series []model.ProductionRecord) (*model.Bundle, error) {
	if len(series) == 0 {
		return &model.Bundle{}, nil
	}
	if err := e.validate(series); err != nil {
		return nil, err
	}

	b := &model.Bundle{
		NS:       NS(series),
		SP:       SP(series),
		M:        M(series),
		S:        S(series),
		P:        P(series),
		K:        K(series),
		Reserves: Reserves(series, e.cfg.Recovery),
	}

	results := Results(series, b)
	if reserves := ReserveResults(series, e.cfg.Recovery); len(reserves) > 0 {
		results = append(results, reserves...)
	}
	b.Results = results

	zap.L().Debug("engine: bundle computed",
		zap.Int("records", len(series)),
		zap.Int("active", len(model.ActiveRecords(series))),
		zap.Int("results", len(b.Results)),
	)

	return b, nil
}

func (e *Engine) validate(series []model.ProductionRecord) error {
	if e.cfg.MaxRecords > 0 && len(series) > e.cfg.MaxRecords {
		return eris.Wrapf(ErrTooManyRecords, "%d records exceeds limit %d", len(series), e.cfg.MaxRecords)
	}
	if !e.cfg.StrictYears {
		return nil
	}
	seen := make(map[int]struct{}, len(series))
	for _, r := range series {
		if _, dup := seen[r.Year]; dup {
			return eris.Wrapf(ErrDuplicateYear, "year %d", r.Year)
		}
		seen[r.Year] = struct{}{}
	}
	return nil
}
