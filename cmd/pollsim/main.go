package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pollsim/adapters/excel"
	"pollsim/app"
	"pollsim/domain/core"
	"pollsim/domain/sampling"
	"pollsim/internal/config"
	"pollsim/internal/container"
	"pollsim/internal/errors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd, err := newRootCmd(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

// describeError prefixes a failure with its application error code
func describeError(err error) string {
	if !errors.IsAppError(err) {
		err = errors.Wrap(err, "command failed")
	}
	return fmt.Sprintf("[%s] %v", errors.GetCode(err), err)
}

func newRootCmd(cfg *config.Config) (*cobra.Command, error) {
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:          "pollsim",
		Short:        "Draw polls from an urn and estimate proportions with standard errors",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newPollCmd(c),
		newRepeatCmd(c),
		newSweepCmd(c),
		newPlanCmd(c),
		newExportCmd(c),
	)

	return rootCmd, nil
}

func newPollCmd(c *container.Container) *cobra.Command {
	var sampleSize int
	var seed int64
	var confidence float64

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Take a single poll and report the estimate",
		Long: `Draw one sample with replacement from the urn and report the sample
proportion, its standard error and a confidence interval.

Example: pollsim poll --sample-size 25 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoll(cmd.Context(), c, sampleSize, seed, confidence)
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", c.Config.Poll.SampleSize, "Number of beads to draw")
	cmd.Flags().Int64Var(&seed, "seed", c.Config.Poll.Seed, "Random seed for a reproducible draw")
	cmd.Flags().Float64Var(&confidence, "confidence", c.Config.Poll.Confidence, "Confidence level for the interval")

	return cmd
}

func runPoll(ctx context.Context, c *container.Container, sampleSize int, seed int64, confidence float64) error {
	pop, err := c.Population()
	if err != nil {
		return err
	}

	result, err := c.PollService.TakePoll(ctx, pop, sampleSize, seed)
	if err != nil {
		return err
	}

	printEstimate(result.Estimate, result.Sample.Positives())
	return printIntervals(result.Estimate, confidence)
}

func newRepeatCmd(c *container.Container) *cobra.Command {
	var sampleSize, trials, concurrency int
	var seed int64
	var parallel bool
	var runID string

	cmd := &cobra.Command{
		Use:   "repeat",
		Short: "Take the same poll several times and compare the estimates",
		Long: `Repeat a poll to see how much the estimate moves between samples, and
compare that spread with the analytic standard error.

Example: pollsim repeat --sample-size 25 --trials 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pop, err := c.Population()
			if err != nil {
				return err
			}

			var id core.RunID
			if cmd.Flags().Changed("run-id") {
				if id, err = core.ParseRunID(runID); err != nil {
					return errors.Wrapf(err, "invalid --run-id %q", runID)
				}
			}

			var result *app.RepeatedPollResult
			if parallel {
				result, err = c.PollService.RunTrials(cmd.Context(), app.TrialRequest{
					Population:  pop,
					SampleSize:  sampleSize,
					Trials:      trials,
					Seed:        seed,
					RunID:       id,
					Concurrency: concurrency,
				})
			} else {
				result, err = c.PollService.RepeatPolls(cmd.Context(), pop, sampleSize, trials, seed)
			}
			if err != nil {
				return err
			}

			printTrials(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", c.Config.Poll.SampleSize, "Number of beads per poll")
	cmd.Flags().IntVar(&trials, "trials", c.Config.Poll.Trials, "Number of polls")
	cmd.Flags().Int64Var(&seed, "seed", c.Config.Poll.Seed, "Random seed")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Draw each poll on its own stream concurrently")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent polls with --parallel (0 = unlimited)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier; fix it with --parallel to reproduce a run")

	return cmd
}

func newSweepCmd(c *container.Container) *cobra.Command {
	var assumed float64
	var sizes string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Show how the standard error shrinks as the poll grows",
		Long: `Project the standard error for each sample size under an assumed
proportion. No beads are drawn.

Example: pollsim sweep --assumed 0.51 --sizes 10,100,1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sampleSizes, err := config.ParseSampleSizes(sizes)
			if err != nil {
				return err
			}
			result, err := c.PollService.PlanSampleSizes(assumed, sampleSizes)
			if err != nil {
				return err
			}
			printSweep(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&assumed, "assumed", c.Config.Sweep.AssumedProportion, "Assumed proportion for planning")
	cmd.Flags().StringVar(&sizes, "sizes", joinSizes(c.Config.Sweep.SampleSizes), "Comma-separated sample sizes, kept in order")

	return cmd
}

func newPlanCmd(c *container.Container) *cobra.Command {
	var assumed, target float64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Find the smallest poll that reaches a target standard error",
		Long: `Invert the sweep: report the smallest sample size whose projected
standard error under the assumed proportion does not exceed the target.

Example: pollsim plan --assumed 0.51 --target-se 0.0158`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.PollService.RequiredSampleSize(assumed, target)
			if err != nil {
				return err
			}
			fmt.Printf("Assumed proportion: %.3f\n", assumed)
			fmt.Printf("Target standard error: %.4f\n", target)
			fmt.Printf("Required sample size: %d\n", n)
			return nil
		},
	}

	cmd.Flags().Float64Var(&assumed, "assumed", c.Config.Sweep.AssumedProportion, "Assumed proportion for planning")
	cmd.Flags().Float64Var(&target, "target-se", 0.0158, "Target standard error")

	return cmd
}

func newExportCmd(c *container.Container) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured sweep and repeated polls to an xlsx workbook",
		Long: `Export the configured sweep and a run of repeated polls as a workbook
with a Sweep sheet and a Trials sheet.

Example: pollsim export --out lesson.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pop, err := c.Population()
			if err != nil {
				return err
			}
			sweep, err := c.PollService.PlanSampleSizes(c.Config.Sweep.AssumedProportion, c.Config.Sweep.SampleSizes)
			if err != nil {
				return err
			}
			trials, err := c.PollService.RepeatPolls(cmd.Context(), pop, c.Config.Poll.SampleSize, c.Config.Poll.Trials, c.Config.Poll.Seed)
			if err != nil {
				return err
			}
			if err := excel.NewReportWriter(out).Write(sweep, trials.Estimates()); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "pollsim.xlsx", "Output workbook path")

	return cmd
}

func printEstimate(est sampling.EstimateResult, positives int) {
	fmt.Printf("Sample size: %d (%d positive)\n", est.SampleSize, positives)
	fmt.Printf("Point estimate: %.4f\n", est.PointEstimate)
	fmt.Printf("Standard error: %.4f\n", est.StandardError)
	fmt.Printf("Spread: %+.4f (se %.4f)\n", est.Spread(), est.SpreadStandardError())
}

func printIntervals(est sampling.EstimateResult, confidence float64) error {
	ci, err := est.ConfidenceInterval(confidence)
	if err != nil {
		return err
	}
	wilson, err := est.WilsonInterval(confidence)
	if err != nil {
		return err
	}
	fmt.Printf("%.0f%% interval (normal): [%.4f, %.4f]\n", confidence*100, ci.Lower, ci.Upper)
	fmt.Printf("%.0f%% interval (Wilson): [%.4f, %.4f]\n", confidence*100, wilson.Lower, wilson.Upper)
	return nil
}

func printTrials(result *app.RepeatedPollResult) {
	fmt.Printf("Run %s\n", result.RunID)
	fmt.Printf("%-6s %-10s %-10s\n", "Poll", "Estimate", "Std. err")
	for i, est := range result.Estimates() {
		fmt.Printf("%-6d %-10.4f %-10.4f\n", i+1, est.PointEstimate, est.StandardError)
	}
	s := result.Summary
	fmt.Printf("\nMean estimate: %.4f (range %.4f to %.4f)\n", s.MeanEstimate, s.MinEstimate, s.MaxEstimate)
	fmt.Printf("Spread of estimates (empirical se): %.4f\n", s.EmpiricalSE)
	fmt.Printf("Average analytic se: %.4f\n", s.MeanAnalyticSE)
	if shape := result.Shape; shape != nil && shape.JarqueBera > 0 {
		fmt.Printf("Shape: skewness %.3f, excess kurtosis %.3f, normality p %.3f\n",
			shape.Skewness, shape.ExcessKurtosis, shape.NormalityP)
	}
}

func printSweep(result sampling.SweepResult) {
	fmt.Printf("Assumed proportion: %.3f\n", result.AssumedProportion)
	fmt.Printf("%-12s %-10s\n", "Sample size", "Std. err")
	for _, p := range result.Points {
		fmt.Printf("%-12d %-10.4f\n", p.SampleSize, p.StandardError)
	}
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
