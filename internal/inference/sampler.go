// Package inference draws with-replacement samples from a population and
// turns them into proportion estimates with analytic standard errors.
package inference

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

// Draw takes sampleSize independent Bernoulli draws from the population's
// label distribution. Each observation consumes exactly one value from src,
// so a seeded source always yields the same sample.
func Draw(pop *sampling.Population, sampleSize int, src rand.Source) (*sampling.Sample, error) {
	if pop == nil {
		return nil, core.NewInvalidParameterError("population", nil, "is required")
	}
	if sampleSize < 1 {
		return nil, core.NewInvalidParameterError("sampleSize", sampleSize, "must be at least 1")
	}
	if src == nil {
		return nil, core.NewInvalidParameterError("randomSource", nil, "is required")
	}

	urn := distuv.Bernoulli{P: pop.LabelDistribution().Positive, Src: src}
	observations := make([]sampling.Label, sampleSize)
	for i := range observations {
		observations[i] = urn.Rand() == 1
	}

	return sampling.NewSample(pop.ID(), observations), nil
}

// DrawRepeated draws trials independent samples in sequence from one source.
func DrawRepeated(pop *sampling.Population, sampleSize, trials int, src rand.Source) ([]*sampling.Sample, error) {
	if trials < 1 {
		return nil, core.NewInvalidParameterError("trials", trials, "must be at least 1")
	}

	samples := make([]*sampling.Sample, 0, trials)
	for i := 0; i < trials; i++ {
		s, err := Draw(pop, sampleSize, src)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}
