package container

import (
	"context"

	"pollsim/adapters/excel"
	"pollsim/adapters/rng"
	"pollsim/app"
	"pollsim/domain/sampling"
	"pollsim/internal"
	"pollsim/internal/config"
	"pollsim/internal/errors"
	"pollsim/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	RNG ports.RNGPort

	// Services
	PollService *app.PollService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.InternalError("config cannot be nil")
	}

	level, ok := internal.ParseLogLevel(cfg.LogLevel)
	logger := internal.NewLogger(level)
	if !ok {
		logger.Warn("Unknown LOG_LEVEL %q, using %s", cfg.LogLevel, level)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		RNG:    rng.NewPCGAdapter(),
	}
	c.PollService = app.NewPollService(c.RNG, c.Logger)

	if err := c.PollService.CheckReproducible(context.Background(), cfg.Poll.Seed); err != nil {
		return nil, errors.Wrap(err, "rng self-check failed")
	}

	return c, nil
}

// Population builds the configured urn: from the labeled workbook when a
// file is set, otherwise from size and true proportion
func (c *Container) Population() (*sampling.Population, error) {
	pc := c.Config.Population
	if pc.File != "" {
		xc := excel.DefaultExcelConfig()
		xc.FilePath = pc.File
		xc.Column = pc.Column
		xc.PositiveValue = pc.PositiveValue

		pop, err := excel.LoadPopulation(xc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load population from %s", pc.File)
		}
		c.Logger.Info("Loaded population of %d from %s", pop.Size(), pc.File)
		return pop, nil
	}
	return sampling.NewPopulation(pc.Size, pc.TrueProportion)
}
