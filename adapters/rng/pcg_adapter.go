package rng

import (
	"context"
	"fmt"
	"math/rand/v2"

	"pollsim/domain/core"
)

// PCGAdapter implements ports.RNGPort with math/rand/v2 PCG streams
type PCGAdapter struct{}

// NewPCGAdapter creates a PCG-backed RNG adapter
func NewPCGAdapter() *PCGAdapter {
	return &PCGAdapter{}
}

// SeededStream creates a deterministic source for a named operation
func (a *PCGAdapter) SeededStream(ctx context.Context, name string, seed int64) (rand.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.NewPCG(uint64(seed), uint64(hashString(name))), nil
}

// Stream creates a deterministic source for a specific run/stage/key combination
func (a *PCGAdapter) Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (rand.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := baseSeed
	if runID != "" {
		seed = int64(hashString(runID)) + seed
	}
	if stageName != "" {
		seed = int64(hashString(stageName)) + seed
	}
	if key != "" {
		seed = int64(hashString(key)) + seed
	}
	return rand.NewPCG(uint64(seed), uint64(hashString(stageName+"/"+key))), nil
}

// ValidateSeed ensures the seed produces expected deterministic results
func (a *PCGAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []uint64) error {
	src, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		if got := src.Uint64(); got != want {
			return fmt.Errorf("%w: %s seed %d value %d = %d, want %d", core.ErrSeedMismatch, name, seed, i, got, want)
		}
	}
	return nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
