package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"pollsim/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Population PopulationConfig
	Poll       PollConfig
	Sweep      SweepConfig
	LogLevel   string
}

// PopulationConfig describes the urn. When File is set the labels are read
// from that workbook and Size/TrueProportion are ignored.
type PopulationConfig struct {
	Size           int
	TrueProportion float64
	File           string
	Column         string
	PositiveValue  string
}

// PollConfig holds the sampling settings for a single or repeated poll
type PollConfig struct {
	SampleSize int
	Trials     int
	Seed       int64
	Confidence float64
}

// SweepConfig holds the planning sweep settings
type SweepConfig struct {
	AssumedProportion float64
	SampleSizes       []int
}

// Default values mirror the classroom example: a 10,000 bead urn split
// evenly, four polls of 25, and a planning assumption of p=0.51.
const (
	DefaultPopulationSize    = 10000
	DefaultTrueProportion    = 0.5
	DefaultSampleSize        = 25
	DefaultTrials            = 4
	DefaultSeed              = 42
	DefaultConfidence        = 0.95
	DefaultAssumedProportion = 0.51
	DefaultSweepSizes        = "10,25,100,1000,10000"
	DefaultPositiveValue     = "blue"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	population, err := loadPopulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load population configuration")
	}

	poll, err := loadPollConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load poll configuration")
	}

	sweep, err := loadSweepConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep configuration")
	}

	config := &Config{
		Population: *population,
		Poll:       *poll,
		Sweep:      *sweep,
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPopulationConfig() (*PopulationConfig, error) {
	size, err := getEnvInt("POLL_POPULATION_SIZE", DefaultPopulationSize)
	if err != nil {
		return nil, err
	}
	p, err := getEnvFloat("POLL_TRUE_PROPORTION", DefaultTrueProportion)
	if err != nil {
		return nil, err
	}
	return &PopulationConfig{
		Size:           size,
		TrueProportion: p,
		File:           getEnvOrDefault("POLL_POPULATION_FILE", ""),
		Column:         getEnvOrDefault("POLL_POPULATION_COLUMN", ""),
		PositiveValue:  getEnvOrDefault("POLL_POSITIVE_VALUE", DefaultPositiveValue),
	}, nil
}

func loadPollConfig() (*PollConfig, error) {
	sampleSize, err := getEnvInt("POLL_SAMPLE_SIZE", DefaultSampleSize)
	if err != nil {
		return nil, err
	}
	trials, err := getEnvInt("POLL_TRIALS", DefaultTrials)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt64("POLL_SEED", DefaultSeed)
	if err != nil {
		return nil, err
	}
	confidence, err := getEnvFloat("POLL_CONFIDENCE", DefaultConfidence)
	if err != nil {
		return nil, err
	}
	return &PollConfig{
		SampleSize: sampleSize,
		Trials:     trials,
		Seed:       seed,
		Confidence: confidence,
	}, nil
}

func loadSweepConfig() (*SweepConfig, error) {
	assumed, err := getEnvFloat("POLL_ASSUMED_PROPORTION", DefaultAssumedProportion)
	if err != nil {
		return nil, err
	}
	sizes, err := ParseSampleSizes(getEnvOrDefault("POLL_SWEEP_SIZES", DefaultSweepSizes))
	if err != nil {
		return nil, errors.Wrap(err, "POLL_SWEEP_SIZES")
	}
	return &SweepConfig{
		AssumedProportion: assumed,
		SampleSizes:       sizes,
	}, nil
}

// Validate checks ranges; the sampling code re-checks its own inputs
func (c *Config) Validate() error {
	if c.Population.File == "" {
		if c.Population.Size <= 0 {
			return errors.ConfigInvalid("population size must be positive")
		}
		if !inUnitInterval(c.Population.TrueProportion) {
			return errors.ConfigInvalid("true proportion must be within [0,1]")
		}
	}
	if c.Poll.SampleSize < 1 {
		return errors.ConfigInvalid("sample size must be at least 1")
	}
	if c.Poll.Trials < 1 {
		return errors.ConfigInvalid("trials must be at least 1")
	}
	if c.Poll.Confidence <= 0 || c.Poll.Confidence >= 1 || math.IsNaN(c.Poll.Confidence) {
		return errors.ConfigInvalid("confidence must be within (0,1)")
	}
	if !inUnitInterval(c.Sweep.AssumedProportion) {
		return errors.ConfigInvalid("assumed proportion must be within [0,1]")
	}
	if len(c.Sweep.SampleSizes) == 0 {
		return errors.ConfigInvalid("at least one sweep sample size is required")
	}
	return nil
}

// ParseSampleSizes parses a comma-separated list of positive integers, keeping order
func ParseSampleSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("sample size %q is not an integer", field))
		}
		if n <= 0 {
			return nil, errors.ConfigInvalid(fmt.Sprintf("sample size %d must be positive", n))
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}
