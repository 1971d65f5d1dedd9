package testkit

import (
	"math/rand/v2"

	"pollsim/adapters/rng"
	"pollsim/domain/sampling"
	"pollsim/internal"
	"pollsim/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	rng    *rng.PCGAdapter
	logger *internal.Logger
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{
		rng:    rng.NewPCGAdapter(),
		logger: internal.NewDiscardLogger(),
	}
}

// RNGAdapter returns the deterministic RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return t.rng
}

// Logger returns a logger that discards output
func (t *TestKit) Logger() *internal.Logger {
	return t.logger
}

// Source returns a fresh seeded source independent of the adapter's naming
func (t *TestKit) Source(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x5851f42d4c957f2d)
}

// ClassroomPopulation is the 10,000 bead urn with an even split
func (t *TestKit) ClassroomPopulation() *sampling.Population {
	return t.MustPopulation(10000, 0.5)
}

// MustPopulation creates a population or panics; fixtures only
func (t *TestKit) MustPopulation(size int, p float64) *sampling.Population {
	pop, err := sampling.NewPopulation(size, p)
	if err != nil {
		panic(err)
	}
	return pop
}
