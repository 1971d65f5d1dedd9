package sampling

import (
	"pollsim/domain/core"
)

// Sample is a fixed-length sequence of observations drawn with replacement.
type Sample struct {
	observations []Label
	populationID core.PopulationID
}

// NewSample creates a sample; the observations slice is copied.
func NewSample(populationID core.PopulationID, observations []Label) *Sample {
	obs := make([]Label, len(observations))
	copy(obs, observations)
	return &Sample{observations: obs, populationID: populationID}
}

// Size returns the number of observations
func (s *Sample) Size() int {
	if s == nil {
		return 0
	}
	return len(s.observations)
}

// PopulationID returns the traceability reference to the source population
func (s *Sample) PopulationID() core.PopulationID { return s.populationID }

// Observations returns a copy of the observed labels in draw order
func (s *Sample) Observations() []Label {
	obs := make([]Label, len(s.observations))
	copy(obs, s.observations)
	return obs
}

// Values returns the observations mapped to 1.0/0.0
func (s *Sample) Values() []float64 {
	values := make([]float64, len(s.observations))
	for i, l := range s.observations {
		values[i] = l.Value()
	}
	return values
}

// Positives counts positive observations
func (s *Sample) Positives() int {
	n := 0
	for _, l := range s.observations {
		if l == Positive {
			n++
		}
	}
	return n
}
