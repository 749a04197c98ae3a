package pipeline

import (
	"context"
	"log/slog"

	"github.com/jlogtenberg/leakscan/internal/detector"
	"github.com/jlogtenberg/leakscan/internal/model"
)

// SiteScan is the per-site state threaded through the pipeline steps.
// Every site gets a fresh SiteScan; nothing in it is shared across sites.
type SiteScan struct {
	// Site is the site identifier (the capture directory name).
	Site string

	// HARPath is the path to the site's capture file.
	HARPath string

	// CountryOverride, when non-empty, wins over the site-language
	// mapping during profile resolution.
	CountryOverride string

	// Country is the resolved country, set by the profile step.
	Country string

	// Profile is the resolved country profile, set by the profile step.
	// Empty when the country is absent from the profile table.
	Profile model.Record

	// SearchStrings is the site's ordered search-string collection,
	// set by the search-string step.
	SearchStrings []string

	// Detector is the site's detector instance, set by the search-string
	// step from SearchStrings.
	Detector detector.Detector

	// Leaks accumulates detected leaks per third-party domain,
	// populated by the detect step.
	Leaks *Accumulator

	// Result is the formatted site result, set by the detect step when at
	// least one domain group is non-empty; nil otherwise.
	Result *model.SiteResult

	// PerformedSteps records the executed step names in order.
	PerformedSteps []string
}

// NewSiteScan creates the scan state for one site.
func NewSiteScan(site, harPath string) *SiteScan {
	return &SiteScan{
		Site:    site,
		HARPath: harPath,
		Leaks:   NewAccumulator(),
	}
}

// Step defines the interface that all pipeline steps implement.
// Steps are executed in sequence, each receiving the accumulated scan
// state from previous steps.
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the scan state to modify. Returning an error aborts
	// the site's pipeline unless the pipeline continues on error.
	Do(ctx context.Context, scan *SiteScan) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps for one site.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing steps
// after one fails. The default stops on the first error because a failed
// profile or search-string step leaves nothing for the detect step to do.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence for one site.
// Cancellation is checked between steps; steps themselves are expected to
// check the context during long entry loops.
func (p *Pipeline) Execute(ctx context.Context, scan *SiteScan) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"site", scan.Site,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"site", scan.Site,
		)

		if err := step.Do(ctx, scan); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"site", scan.Site,
				"error", err,
			)

			if !p.continueOnError {
				return err
			}
		}

		scan.PerformedSteps = append(scan.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
