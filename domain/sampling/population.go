package sampling

import (
	"math"

	"pollsim/domain/core"
)

// Label is the binary tag carried by every item in the urn.
type Label bool

const (
	Positive Label = true
	Negative Label = false
)

// Value maps a label to 1.0 (positive) or 0.0 (negative)
func (l Label) Value() float64 {
	if l {
		return 1
	}
	return 0
}

// String returns the label name
func (l Label) String() string {
	if l {
		return "positive"
	}
	return "negative"
}

// LabelDistribution is the two-outcome distribution of labels in a population.
type LabelDistribution struct {
	Positive float64
	Negative float64
}

// Population is an immutable finite urn of binary-labeled items.
//
// The true proportion is ground truth. Sampling code reads only the label
// distribution; TrueProportion exists for verification.
type Population struct {
	id             core.PopulationID
	size           int
	trueProportion float64
}

// NewPopulation creates a population of size items, a trueProportion share
// of which are positive.
func NewPopulation(size int, trueProportion float64) (*Population, error) {
	if size <= 0 {
		return nil, core.NewInvalidParameterError("size", size, "must be positive")
	}
	if err := ValidateProportion("trueProportion", trueProportion); err != nil {
		return nil, err
	}
	return &Population{
		id:             core.NewPopulationID(),
		size:           size,
		trueProportion: trueProportion,
	}, nil
}

// NewPopulationFromLabels creates a population from an explicit multiset of labels.
func NewPopulationFromLabels(labels []Label) (*Population, error) {
	if len(labels) == 0 {
		return nil, core.NewInvalidParameterError("labels", 0, "population needs at least one item")
	}
	positives := 0
	for _, l := range labels {
		if l == Positive {
			positives++
		}
	}
	return NewPopulation(len(labels), float64(positives)/float64(len(labels)))
}

// ID returns the population identifier
func (p *Population) ID() core.PopulationID { return p.id }

// Size returns the number of items in the urn
func (p *Population) Size() int { return p.size }

// TrueProportion returns the parameter. Only test oracles should call this.
func (p *Population) TrueProportion() float64 { return p.trueProportion }

// Spread returns the true signed margin 2p-1
func (p *Population) Spread() float64 { return 2*p.trueProportion - 1 }

// LabelDistribution returns the probability of drawing each label
func (p *Population) LabelDistribution() LabelDistribution {
	return LabelDistribution{
		Positive: p.trueProportion,
		Negative: 1 - p.trueProportion,
	}
}

// ValidateProportion checks that value is a real number within [0,1].
func ValidateProportion(name string, value float64) error {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return core.NewInvalidParameterError(name, value, "must be within [0,1]")
	}
	return nil
}
