// Package profiling describes the shape of a sampling distribution: the
// spread of point estimates collected over repeated polls.
package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"pollsim/domain/core"
)

// minNormalityCount is the smallest collection the Jarque-Bera check is run on
const minNormalityCount = 8

// DistributionProfile summarizes the shape of a collection of estimates
type DistributionProfile struct {
	Count          int     `json:"count"`
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Median         float64 `json:"median"`
	Q25            float64 `json:"q25"`
	Q75            float64 `json:"q75"`
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`
	JarqueBera     float64 `json:"jarque_bera"`
	NormalityP     float64 `json:"normality_p"`
	LooksNormal    bool    `json:"looks_normal"`
	Outliers       int     `json:"outliers"`
}

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct {
	alpha float64
}

// NewDistributionAnalyzer creates an analyzer that calls a distribution
// normal when the Jarque-Bera p-value exceeds alpha
func NewDistributionAnalyzer(alpha float64) *DistributionAnalyzer {
	return &DistributionAnalyzer{alpha: alpha}
}

// AnalyzeDistribution profiles data, which must hold at least two values
func (da *DistributionAnalyzer) AnalyzeDistribution(data []float64) (DistributionProfile, error) {
	profile := DistributionProfile{Count: len(data)}
	if len(data) < 2 {
		return profile, core.NewInvalidParameterError("data", len(data), "needs at least two values")
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return profile, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return profile, err
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return profile, err
	}

	profile.Mean = mean
	profile.StdDev = stdDev
	profile.Median = median
	profile.Q25 = q25
	profile.Q75 = q75
	profile.Outliers = detectOutliers(data, q25, q75)

	// A degenerate collection has no shape to test.
	if stdDev == 0 {
		return profile, nil
	}

	profile.Skewness = calculateSkewness(data, mean, stdDev)
	profile.ExcessKurtosis = calculateKurtosis(data, mean, stdDev) - 3

	if len(data) >= minNormalityCount {
		profile.JarqueBera, profile.NormalityP = jarqueBera(len(data), profile.Skewness, profile.ExcessKurtosis)
		profile.LooksNormal = profile.NormalityP > da.alpha
	}

	return profile, nil
}

// calculateSkewness computes the moment coefficient of skewness
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return sum / float64(len(data))
}

// calculateKurtosis computes the moment coefficient of kurtosis (3 for a normal)
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	return sum / float64(len(data))
}

// jarqueBera returns the JB statistic and its chi-square(2) p-value
func jarqueBera(n int, skewness, excessKurtosis float64) (float64, float64) {
	jb := float64(n) / 6 * (skewness*skewness + excessKurtosis*excessKurtosis/4)
	chi := distuv.ChiSquared{K: 2}
	return jb, math.Max(0, 1-chi.CDF(jb))
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}
