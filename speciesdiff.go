// Package speciesdiff compares two species-name datasets and writes the
// resulting reports.
//
// Example usage:
//
//	cfg := speciesdiff.DefaultConfig()
//	cfg.InputA = "plantclef2015.json"
//	cfg.InputB = "plantnet300k.json"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := speciesdiff.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Artifacts)
package speciesdiff

import (
	"context"
	"time"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/adapters/report"
	"github.com/bft-labs/speciesdiff/internal/app"
	"github.com/bft-labs/speciesdiff/internal/cliconfig"
	"github.com/bft-labs/speciesdiff/internal/compare"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/pkg/log"
)

// Config holds every setting of a comparison run.
// Use DefaultConfig() to get a Config with the original file layout.
type Config = cliconfig.Config

// Result is the outcome of comparing two datasets.
type Result = domain.ComparisonResult

// Counts holds the six cardinalities of a Result.
type Counts = domain.Counts

// Outcome is a Result plus the paths of the artifacts written for it.
type Outcome = app.Outcome

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Compare computes the set algebra of two name lists labeled "A" and "B".
// Duplicates collapse and every list in the result is sorted.
func Compare(a, b []string) Result {
	return compare.Names(a, b)
}

// Option configures Run and Watch.
type Option func(*options)

type options struct {
	logger log.Logger
	clock  func() time.Time
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used for workbook file names.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// Run loads both inputs of cfg, compares them and writes cfg.Reports.
// cfg must have been validated.
func Run(ctx context.Context, cfg Config, opts ...Option) (Outcome, error) {
	a, err := newAnalysis(cfg, opts)
	if err != nil {
		return Outcome{}, err
	}
	return a.Run(ctx)
}

// Watch runs once and then again every time one of the inputs changes,
// until ctx is canceled. Failed runs are logged, not returned.
func Watch(ctx context.Context, cfg Config, opts ...Option) error {
	o := buildOptions(opts)
	a, err := newAnalysis(cfg, opts)
	if err != nil {
		return err
	}
	w := app.NewWatcher([]string{cfg.InputA, cfg.InputB}, watchDebounce(cfg), o.logger)
	return w.Watch(ctx, func(ctx context.Context) error {
		_, err := a.Run(ctx)
		return err
	})
}

// minWorkbookDebounce keeps reruns at least one second apart so that each
// run gets its own second-resolution workbook name.
const minWorkbookDebounce = time.Second

// watchDebounce returns the debounce window for Watch.
func watchDebounce(cfg Config) time.Duration {
	if cfg.Debounce >= minWorkbookDebounce {
		return cfg.Debounce
	}
	for _, r := range cfg.Reports {
		if r == report.KindWorkbook {
			return minWorkbookDebounce
		}
	}
	return cfg.Debounce
}

func buildOptions(opts []Option) options {
	o := options{logger: log.NewNoopLogger(), clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newAnalysis(cfg Config, opts []Option) (*app.Analysis, error) {
	o := buildOptions(opts)

	ropts := cfg.ReportOptions()
	ropts.Clock = o.clock
	reporters, err := report.Build(cfg.Reports, ropts)
	if err != nil {
		return nil, domain.InvalidConfig("speciesdiff.reports", err)
	}

	source := fs.NewSpeciesFileLoader(fs.WithFormat(fs.Format(cfg.InputFormat)))
	return app.NewAnalysis(cfg.AnalysisConfig(), source, reporters, o.logger), nil
}
