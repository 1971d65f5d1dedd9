package testkit

import (
	"math"
	"math/rand/v2"

	"pollsim/domain/sampling"
)

// UrnGeneratorConfig configures the labeled-urn generator
type UrnGeneratorConfig struct {
	Size       int     `json:"size"`
	Proportion float64 `json:"proportion"` // share of positive beads, rounded to the nearest bead
	Seed       int64   `json:"seed"`
}

// DefaultUrnConfig returns the classroom urn: 10,000 beads, half blue
func DefaultUrnConfig() UrnGeneratorConfig {
	return UrnGeneratorConfig{
		Size:       10000,
		Proportion: 0.5,
		Seed:       42,
	}
}

// UrnGenerator builds shuffled label multisets with an exact positive count
type UrnGenerator struct {
	config UrnGeneratorConfig
	rng    *rand.Rand
}

// NewUrnGenerator creates a new urn generator
func NewUrnGenerator(config UrnGeneratorConfig) *UrnGenerator {
	return &UrnGenerator{
		config: config,
		rng:    rand.New(rand.NewPCG(uint64(config.Seed), 0)),
	}
}

// GenerateLabels returns Size labels of which round(Size*Proportion) are positive
func (g *UrnGenerator) GenerateLabels() []sampling.Label {
	if g.config.Size <= 0 {
		return nil
	}
	positives := int(math.Round(float64(g.config.Size) * g.config.Proportion))
	labels := make([]sampling.Label, g.config.Size)
	for i := 0; i < positives && i < len(labels); i++ {
		labels[i] = sampling.Positive
	}
	g.rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
	return labels
}

// GeneratePopulation returns a population built from GenerateLabels
func (g *UrnGenerator) GeneratePopulation() (*sampling.Population, error) {
	return sampling.NewPopulationFromLabels(g.GenerateLabels())
}
