package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded randomness sources for deterministic sampling
type RNGPort interface {
	// SeededStream creates a deterministic source for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (rand.Source, error)

	// Stream creates a deterministic source for one trial of a run.
	// The same (runID, stage, key, seed) always yields the same stream.
	Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (rand.Source, error)

	// ValidateSeed ensures the seed produces the expected leading values
	ValidateSeed(ctx context.Context, name string, seed int64, expected []uint64) error
}
