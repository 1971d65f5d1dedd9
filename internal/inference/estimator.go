package inference

import (
	"math"

	"github.com/montanaflynn/stats"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

// Estimate computes the sample proportion and its standard error
// sqrt(p(1-p)/n). The error is exactly 0 when every observation agrees.
func Estimate(sample *sampling.Sample) (sampling.EstimateResult, error) {
	if sample.Size() == 0 {
		return sampling.EstimateResult{}, core.NewInvalidParameterError("sample", 0, "must contain at least one observation")
	}

	p, err := stats.Mean(sample.Values())
	if err != nil {
		return sampling.EstimateResult{}, err
	}

	n := sample.Size()
	return sampling.EstimateResult{
		PointEstimate: p,
		StandardError: StandardError(p, n),
		SampleSize:    n,
	}, nil
}

// EstimateAll estimates every sample, preserving order.
func EstimateAll(samples []*sampling.Sample) ([]sampling.EstimateResult, error) {
	results := make([]sampling.EstimateResult, 0, len(samples))
	for _, s := range samples {
		r, err := Estimate(s)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// StandardError is the closed-form standard error of a proportion p over n draws.
// Callers validate p and n.
func StandardError(p float64, n int) float64 {
	return math.Sqrt(p * (1 - p) / float64(n))
}
