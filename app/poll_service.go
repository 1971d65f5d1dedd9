package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"pollsim/domain/core"
	"pollsim/domain/sampling"
	"pollsim/internal"
	"pollsim/internal/inference"
	"pollsim/internal/profiling"
	"pollsim/ports"
)

// PollService draws polls from a population and reports their estimates
type PollService struct {
	rngPort  ports.RNGPort
	analyzer *profiling.DistributionAnalyzer
	logger   *internal.Logger
}

// PollResult pairs a drawn sample with its estimate
type PollResult struct {
	Sample   *sampling.Sample
	Estimate sampling.EstimateResult
}

// RepeatedPollResult contains every poll of a run plus their summary
type RepeatedPollResult struct {
	RunID     core.RunID                     `json:"run_id"`
	Polls     []PollResult                   `json:"-"`
	Summary   sampling.TrialSummary          `json:"summary"`
	Shape     *profiling.DistributionProfile `json:"shape,omitempty"` // nil for a single poll
	RuntimeMs int64                          `json:"runtime_ms"`
}

// Estimates returns the estimate of each poll in trial order
func (r *RepeatedPollResult) Estimates() []sampling.EstimateResult {
	out := make([]sampling.EstimateResult, len(r.Polls))
	for i, p := range r.Polls {
		out[i] = p.Estimate
	}
	return out
}

// TrialRequest defines the inputs for independent-stream trials
type TrialRequest struct {
	Population  *sampling.Population
	SampleSize  int
	Trials      int
	Seed        int64
	RunID       core.RunID // optional, generated if empty; fix it to reproduce a run
	Concurrency int        // 0 means no limit
}

// NewPollService creates a poll service
func NewPollService(rngPort ports.RNGPort, logger *internal.Logger) *PollService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PollService{
		rngPort:  rngPort,
		analyzer: profiling.NewDistributionAnalyzer(0.05),
		logger:   logger.With("poll"),
	}
}

// TakePoll draws one sample on the stream for seed and estimates it
func (s *PollService) TakePoll(ctx context.Context, pop *sampling.Population, sampleSize int, seed int64) (*PollResult, error) {
	src, err := s.rngPort.SeededStream(ctx, "poll", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create random stream: %w", err)
	}

	sample, err := inference.Draw(pop, sampleSize, src)
	if err != nil {
		return nil, fmt.Errorf("poll draw failed: %w", err)
	}
	estimate, err := inference.Estimate(sample)
	if err != nil {
		return nil, fmt.Errorf("poll estimate failed: %w", err)
	}

	s.logger.Debug("poll n=%d seed=%d estimate=%.4f se=%.4f", sampleSize, seed, estimate.PointEstimate, estimate.StandardError)
	return &PollResult{Sample: sample, Estimate: estimate}, nil
}

// RepeatPolls draws trials samples one after another from a single stream
func (s *PollService) RepeatPolls(ctx context.Context, pop *sampling.Population, sampleSize, trials int, seed int64) (*RepeatedPollResult, error) {
	startTime := time.Now()

	src, err := s.rngPort.SeededStream(ctx, "repeat", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create random stream: %w", err)
	}

	samples, err := inference.DrawRepeated(pop, sampleSize, trials, src)
	if err != nil {
		return nil, fmt.Errorf("repeated draw failed: %w", err)
	}

	polls := make([]PollResult, len(samples))
	for i, sample := range samples {
		estimate, err := inference.Estimate(sample)
		if err != nil {
			return nil, fmt.Errorf("trial %d estimate failed: %w", i+1, err)
		}
		polls[i] = PollResult{Sample: sample, Estimate: estimate}
	}

	return s.finish(core.NewRunID(), polls, startTime)
}

// RunTrials draws each trial on its own derived stream, concurrently.
// Results are in trial order and depend only on (RunID, Seed), never on scheduling.
func (s *PollService) RunTrials(ctx context.Context, req TrialRequest) (*RepeatedPollResult, error) {
	startTime := time.Now()

	if req.Trials < 1 {
		return nil, core.NewInvalidParameterError("trials", req.Trials, "must be at least 1")
	}
	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}

	polls := make([]PollResult, req.Trials)
	g, gctx := errgroup.WithContext(ctx)
	if req.Concurrency > 0 {
		g.SetLimit(req.Concurrency)
	}

	for i := 0; i < req.Trials; i++ {
		g.Go(func() error {
			src, err := s.rngPort.Stream(gctx, runID.String(), "trial", strconv.Itoa(i), req.Seed)
			if err != nil {
				return err
			}
			sample, err := inference.Draw(req.Population, req.SampleSize, src)
			if err != nil {
				return fmt.Errorf("trial %d draw failed: %w", i+1, err)
			}
			estimate, err := inference.Estimate(sample)
			if err != nil {
				return fmt.Errorf("trial %d estimate failed: %w", i+1, err)
			}
			polls[i] = PollResult{Sample: sample, Estimate: estimate}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.finish(runID, polls, startTime)
}

func (s *PollService) finish(runID core.RunID, polls []PollResult, startTime time.Time) (*RepeatedPollResult, error) {
	result := &RepeatedPollResult{RunID: runID, Polls: polls}

	summary, err := inference.SummarizeTrials(result.Estimates())
	if err != nil {
		return nil, fmt.Errorf("trial summary failed: %w", err)
	}
	result.Summary = summary

	if len(polls) > 1 {
		estimates := make([]float64, len(polls))
		for i, p := range polls {
			estimates[i] = p.Estimate.PointEstimate
		}
		shape, err := s.analyzer.AnalyzeDistribution(estimates)
		if err != nil {
			return nil, fmt.Errorf("sampling distribution profile failed: %w", err)
		}
		result.Shape = &shape
	}
	result.RuntimeMs = time.Since(startTime).Milliseconds()

	s.logger.Info("run %s: %d polls of %d, mean estimate %.4f, empirical se %.4f, analytic se %.4f",
		runID, summary.Trials, summary.SampleSize, summary.MeanEstimate, summary.EmpiricalSE, summary.MeanAnalyticSE)
	return result, nil
}

// replayCheckLength is how many leading values CheckReproducible compares
const replayCheckLength = 8

// CheckReproducible confirms the RNG port replays the poll stream for seed
func (s *PollService) CheckReproducible(ctx context.Context, seed int64) error {
	src, err := s.rngPort.SeededStream(ctx, "poll", seed)
	if err != nil {
		return fmt.Errorf("failed to create random stream: %w", err)
	}
	expected := make([]uint64, replayCheckLength)
	for i := range expected {
		expected[i] = src.Uint64()
	}
	if err := s.rngPort.ValidateSeed(ctx, "poll", seed, expected); err != nil {
		return fmt.Errorf("random stream for seed %d is not reproducible: %w", seed, err)
	}
	s.logger.Trace("poll stream for seed %d replays", seed)
	return nil
}

// PlanSampleSizes projects the standard error for each candidate sample size
func (s *PollService) PlanSampleSizes(assumedProportion float64, sampleSizes []int) (sampling.SweepResult, error) {
	result, err := inference.Sweep(assumedProportion, sampleSizes)
	if err != nil {
		return sampling.SweepResult{}, fmt.Errorf("sweep failed: %w", err)
	}
	s.logger.Debug("sweep p=%.3f over %d sample sizes", assumedProportion, len(sampleSizes))
	return result, nil
}

// RequiredSampleSize returns the smallest poll meeting targetSE under assumedProportion
func (s *PollService) RequiredSampleSize(assumedProportion, targetSE float64) (int, error) {
	n, err := inference.RequiredSampleSize(assumedProportion, targetSE)
	if err != nil {
		return 0, fmt.Errorf("sample size planning failed: %w", err)
	}
	return n, nil
}
