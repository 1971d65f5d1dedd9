package inference

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

// countingSource records how many values a draw consumed.
type countingSource struct {
	src   rand.Source
	calls int
}

func (c *countingSource) Uint64() uint64 {
	c.calls++
	return c.src.Uint64()
}

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func mustPopulation(t *testing.T, size int, p float64) *sampling.Population {
	t.Helper()
	pop, err := sampling.NewPopulation(size, p)
	require.NoError(t, err)
	return pop
}

func TestDrawReturnsRequestedSize(t *testing.T) {
	pop := mustPopulation(t, 10000, 0.5)

	for _, n := range []int{1, 2, 25, 1000} {
		sample, err := Draw(pop, n, newSource(1))
		require.NoError(t, err)
		assert.Equal(t, n, sample.Size())
		assert.Equal(t, pop.ID(), sample.PopulationID())
	}
}

func TestDrawConsumesOneValuePerObservation(t *testing.T) {
	pop := mustPopulation(t, 100, 0.4)
	src := &countingSource{src: newSource(7)}

	_, err := Draw(pop, 250, src)
	require.NoError(t, err)
	assert.Equal(t, 250, src.calls)
}

func TestDrawIsReproducible(t *testing.T) {
	pop := mustPopulation(t, 10000, 0.5)

	first, err := Draw(pop, 500, newSource(42))
	require.NoError(t, err)
	second, err := Draw(pop, 500, newSource(42))
	require.NoError(t, err)
	assert.Equal(t, first.Observations(), second.Observations())

	other, err := Draw(pop, 500, newSource(43))
	require.NoError(t, err)
	assert.NotEqual(t, first.Observations(), other.Observations())
}

func TestDrawDegenerateUrns(t *testing.T) {
	allNegative := mustPopulation(t, 10, 0)
	sample, err := Draw(allNegative, 100, newSource(3))
	require.NoError(t, err)
	assert.Equal(t, 0, sample.Positives())

	allPositive := mustPopulation(t, 10, 1)
	sample, err = Draw(allPositive, 100, newSource(3))
	require.NoError(t, err)
	assert.Equal(t, 100, sample.Positives())
}

func TestDrawWithReplacementExceedsPopulationSize(t *testing.T) {
	// A 5-item urn can yield a 50-draw sample because every bead is put back.
	pop := mustPopulation(t, 5, 0.6)
	sample, err := Draw(pop, 50, newSource(9))
	require.NoError(t, err)
	assert.Equal(t, 50, sample.Size())
}

func TestDrawConvergesToTrueProportion(t *testing.T) {
	const n = 100000
	for _, p := range []float64{0.1, 0.3, 0.5, 0.51, 0.9} {
		pop := mustPopulation(t, 1000000, p)
		sample, err := Draw(pop, n, newSource(2024))
		require.NoError(t, err)

		est, err := Estimate(sample)
		require.NoError(t, err)
		// Seven standard errors keeps this far from flaky.
		tolerance := 7 * math.Sqrt(p*(1-p)/n)
		assert.InDelta(t, p, est.PointEstimate, tolerance, "p=%v", p)
	}
}

func TestDrawInvalidParameters(t *testing.T) {
	pop := mustPopulation(t, 10, 0.5)

	tests := []struct {
		name string
		pop  *sampling.Population
		n    int
		src  rand.Source
	}{
		{"zero sample size", pop, 0, newSource(1)},
		{"negative sample size", pop, -5, newSource(1)},
		{"nil population", nil, 10, newSource(1)},
		{"nil source", pop, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample, err := Draw(tt.pop, tt.n, tt.src)
			assert.Nil(t, sample)
			assert.True(t, core.IsInvalidParameter(err), "got %v", err)
		})
	}
}

func TestDrawRepeated(t *testing.T) {
	pop := mustPopulation(t, 10000, 0.5)

	samples, err := DrawRepeated(pop, 25, 4, newSource(11))
	require.NoError(t, err)
	require.Len(t, samples, 4)
	for _, s := range samples {
		assert.Equal(t, 25, s.Size())
	}

	again, err := DrawRepeated(pop, 25, 4, newSource(11))
	require.NoError(t, err)
	for i := range samples {
		assert.Equal(t, samples[i].Observations(), again[i].Observations())
	}

	// Trials continue the same stream rather than restarting it.
	single, err := Draw(pop, 25, newSource(11))
	require.NoError(t, err)
	assert.Equal(t, single.Observations(), samples[0].Observations())
}

func TestDrawRepeatedInvalidTrials(t *testing.T) {
	pop := mustPopulation(t, 10, 0.5)

	_, err := DrawRepeated(pop, 25, 0, newSource(1))
	assert.True(t, core.IsInvalidParameter(err))

	_, err = DrawRepeated(pop, 0, 3, newSource(1))
	assert.True(t, core.IsInvalidParameter(err))
}
