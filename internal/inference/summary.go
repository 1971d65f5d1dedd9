package inference

import (
	"github.com/montanaflynn/stats"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

// SummarizeTrials compares the spread of repeated point estimates with the
// analytic standard error each trial reported. All trials must share a sample size.
func SummarizeTrials(results []sampling.EstimateResult) (sampling.TrialSummary, error) {
	if len(results) == 0 {
		return sampling.TrialSummary{}, core.NewInvalidParameterError("trials", 0, "must be at least 1")
	}

	n := results[0].SampleSize
	estimates := make([]float64, len(results))
	analytic := make([]float64, len(results))
	for i, r := range results {
		if r.SampleSize != n {
			return sampling.TrialSummary{}, core.NewInvalidParameterError("sampleSize", r.SampleSize, "all trials must use the same sample size")
		}
		estimates[i] = r.PointEstimate
		analytic[i] = r.StandardError
	}

	mean, err := stats.Mean(estimates)
	if err != nil {
		return sampling.TrialSummary{}, err
	}
	meanSE, err := stats.Mean(analytic)
	if err != nil {
		return sampling.TrialSummary{}, err
	}
	min, err := stats.Min(estimates)
	if err != nil {
		return sampling.TrialSummary{}, err
	}
	max, err := stats.Max(estimates)
	if err != nil {
		return sampling.TrialSummary{}, err
	}

	// Sample standard deviation is undefined for a single trial.
	empiricalSE := 0.0
	if len(estimates) > 1 {
		empiricalSE, err = stats.StandardDeviationSample(estimates)
		if err != nil {
			return sampling.TrialSummary{}, err
		}
	}

	return sampling.TrialSummary{
		Trials:         len(results),
		SampleSize:     n,
		MeanEstimate:   mean,
		EmpiricalSE:    empiricalSE,
		MeanAnalyticSE: meanSE,
		MinEstimate:    min,
		MaxEstimate:    max,
	}, nil
}
