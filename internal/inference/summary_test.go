package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

func TestSummarizeTrials(t *testing.T) {
	results := []sampling.EstimateResult{
		{PointEstimate: 0.44, StandardError: StandardError(0.44, 25), SampleSize: 25},
		{PointEstimate: 0.60, StandardError: StandardError(0.60, 25), SampleSize: 25},
		{PointEstimate: 0.52, StandardError: StandardError(0.52, 25), SampleSize: 25},
		{PointEstimate: 0.48, StandardError: StandardError(0.48, 25), SampleSize: 25},
	}

	summary, err := SummarizeTrials(results)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Trials)
	assert.Equal(t, 25, summary.SampleSize)
	assert.InDelta(t, 0.51, summary.MeanEstimate, 1e-12)
	assert.Equal(t, 0.44, summary.MinEstimate)
	assert.Equal(t, 0.60, summary.MaxEstimate)
	assert.InDelta(t, 0.16, summary.Range(), 1e-12)
	assert.Greater(t, summary.EmpiricalSE, 0.0)
	assert.InDelta(t, 0.0997, summary.MeanAnalyticSE, 1e-3)
}

func TestSummarizeTrialsEmpiricalMatchesAnalytic(t *testing.T) {
	pop := mustPopulation(t, 10000, 0.5)
	samples, err := DrawRepeated(pop, 100, 2000, newSource(77))
	require.NoError(t, err)
	results, err := EstimateAll(samples)
	require.NoError(t, err)

	summary, err := SummarizeTrials(results)
	require.NoError(t, err)
	// Analytic SE at p=0.5, n=100 is 0.05.
	assert.InDelta(t, 0.05, summary.MeanAnalyticSE, 0.002)
	assert.InDelta(t, 0.05, summary.EmpiricalSE, 0.005)
	assert.InDelta(t, 0.5, summary.MeanEstimate, 0.01)
}

func TestSummarizeSingleTrial(t *testing.T) {
	summary, err := SummarizeTrials([]sampling.EstimateResult{{PointEstimate: 0.4, StandardError: 0.1, SampleSize: 24}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.EmpiricalSE)
	assert.Equal(t, 0.4, summary.MeanEstimate)
}

func TestSummarizeTrialsInvalid(t *testing.T) {
	_, err := SummarizeTrials(nil)
	assert.True(t, core.IsInvalidParameter(err))

	_, err = SummarizeTrials([]sampling.EstimateResult{
		{PointEstimate: 0.4, SampleSize: 10},
		{PointEstimate: 0.4, SampleSize: 20},
	})
	assert.True(t, core.IsInvalidParameter(err))
}
