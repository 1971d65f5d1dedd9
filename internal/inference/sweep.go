package inference

import (
	"fmt"
	"math"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
)

// Sweep projects the standard error for each requested sample size under an
// assumed proportion. Nothing is sampled. Points keep the input order.
func Sweep(assumedProportion float64, sampleSizes []int) (sampling.SweepResult, error) {
	if err := sampling.ValidateProportion("assumedProportion", assumedProportion); err != nil {
		return sampling.SweepResult{}, err
	}
	for i, n := range sampleSizes {
		if n <= 0 {
			return sampling.SweepResult{}, core.NewInvalidParameterError(fmt.Sprintf("sampleSizes[%d]", i), n, "must be positive")
		}
	}

	points := make([]sampling.SweepPoint, len(sampleSizes))
	for i, n := range sampleSizes {
		points[i] = sampling.SweepPoint{
			SampleSize:    n,
			StandardError: StandardError(assumedProportion, n),
		}
	}

	return sampling.SweepResult{
		AssumedProportion: assumedProportion,
		Points:            points,
	}, nil
}

// RequiredSampleSize returns the smallest n whose projected standard error
// under assumedProportion does not exceed targetSE.
func RequiredSampleSize(assumedProportion, targetSE float64) (int, error) {
	if err := sampling.ValidateProportion("assumedProportion", assumedProportion); err != nil {
		return 0, err
	}
	if math.IsNaN(targetSE) || math.IsInf(targetSE, 0) || targetSE <= 0 {
		return 0, core.NewInvalidParameterError("targetSE", targetSE, "must be a positive number")
	}

	variance := assumedProportion * (1 - assumedProportion)
	estimate := math.Ceil(variance / (targetSE * targetSE))
	if estimate > math.MaxInt32 {
		return 0, core.NewInvalidParameterError("targetSE", targetSE, "requires an unreasonably large sample")
	}

	n := int(estimate)
	if n < 1 {
		n = 1
	}
	// Inexact division can leave ceil one off in either direction.
	for StandardError(assumedProportion, n) > targetSE {
		n++
	}
	for n > 1 && StandardError(assumedProportion, n-1) <= targetSE {
		n--
	}
	return n, nil
}
