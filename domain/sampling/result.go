package sampling

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"pollsim/domain/core"
)

// EstimateResult is the point estimate and analytic standard error of one sample.
// INVARIANTS:
// - SampleSize > 0
// - StandardError == sqrt(PointEstimate*(1-PointEstimate)/SampleSize)
type EstimateResult struct {
	PointEstimate float64 `json:"point_estimate"` // sample proportion, 0.0 to 1.0
	StandardError float64 `json:"standard_error"` // >= 0
	SampleSize    int     `json:"sample_size"`
}

// Spread returns the estimated signed margin 2p-1
func (r EstimateResult) Spread() float64 {
	return 2*r.PointEstimate - 1
}

// SpreadStandardError is the standard error of the spread estimate
func (r EstimateResult) SpreadStandardError() float64 {
	return 2 * r.StandardError
}

// MarginOfError returns z*SE for a two-sided normal interval at the given level.
func (r EstimateResult) MarginOfError(level float64) (float64, error) {
	z, err := CriticalValue(level)
	if err != nil {
		return 0, err
	}
	return z * r.StandardError, nil
}

// ConfidenceInterval returns the normal-approximation interval, clamped to [0,1].
func (r EstimateResult) ConfidenceInterval(level float64) (Interval, error) {
	moe, err := r.MarginOfError(level)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Lower: math.Max(0, r.PointEstimate-moe),
		Upper: math.Min(1, r.PointEstimate+moe),
		Level: level,
	}, nil
}

// WilsonInterval returns the Wilson score interval at the given level.
// Unlike the normal interval it keeps non-zero width when the estimate is 0 or 1.
func (r EstimateResult) WilsonInterval(level float64) (Interval, error) {
	z, err := CriticalValue(level)
	if err != nil {
		return Interval{}, err
	}
	if r.SampleSize <= 0 {
		return Interval{}, core.NewInvalidParameterError("sampleSize", r.SampleSize, "must be positive")
	}

	p := r.PointEstimate
	n := float64(r.SampleSize)
	z2 := z * z
	base := p + z2/(2*n)
	plusminus := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	normalize := 1 + z2/n

	return Interval{
		Lower: math.Max(0, (base-plusminus)/normalize),
		Upper: math.Min(1, (base+plusminus)/normalize),
		Level: level,
	}, nil
}

// Interval is a two-sided confidence interval for a proportion.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Contains reports whether value lies inside the closed interval
func (i Interval) Contains(value float64) bool {
	return value >= i.Lower && value <= i.Upper
}

// Width returns Upper - Lower
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// CriticalValue returns the standard normal quantile for a two-sided level (1.96 at 0.95).
func CriticalValue(level float64) (float64, error) {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return 0, core.NewInvalidParameterError("confidence", level, "must be within (0,1)")
	}
	return distuv.UnitNormal.Quantile((1 + level) / 2), nil
}

// SweepPoint is one (sample size, standard error) pair of a sweep.
type SweepPoint struct {
	SampleSize    int     `json:"sample_size"`
	StandardError float64 `json:"standard_error"`
}

// SweepResult traces standard error against sample size under an assumed proportion.
// Points keep the order in which sample sizes were requested.
type SweepResult struct {
	AssumedProportion float64      `json:"assumed_proportion"`
	Points            []SweepPoint `json:"points"`
}

// TrialSummary aggregates the estimates of repeated polls.
type TrialSummary struct {
	Trials         int     `json:"trials"`
	SampleSize     int     `json:"sample_size"`
	MeanEstimate   float64 `json:"mean_estimate"`
	EmpiricalSE    float64 `json:"empirical_se"`     // sample std dev of the point estimates
	MeanAnalyticSE float64 `json:"mean_analytic_se"` // average of per-trial analytic SE
	MinEstimate    float64 `json:"min_estimate"`
	MaxEstimate    float64 `json:"max_estimate"`
}

// Range returns the spread between the largest and smallest estimate
func (s TrialSummary) Range() float64 {
	return s.MaxEstimate - s.MinEstimate
}
