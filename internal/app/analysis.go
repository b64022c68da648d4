package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/speciesdiff/internal/compare"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
	"github.com/bft-labs/speciesdiff/pkg/log"
)

// AnalysisConfig names the two datasets to compare.
type AnalysisConfig struct {
	InputA string
	InputB string
	LabelA string
	LabelB string
}

// Outcome is what one analysis run produced.
type Outcome struct {
	Result    domain.ComparisonResult
	Artifacts []string
}

// Analysis loads two datasets, compares them and renders every reporter
// in order.
type Analysis struct {
	config    AnalysisConfig
	source    ports.SpeciesSource
	reporters []ports.Reporter
	logger    log.Logger
}

// NewAnalysis creates an analysis with the given dependencies.
// A nil logger discards output.
func NewAnalysis(
	config AnalysisConfig,
	source ports.SpeciesSource,
	reporters []ports.Reporter,
	logger log.Logger,
) *Analysis {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Analysis{
		config:    config,
		source:    source,
		reporters: reporters,
		logger:    logger,
	}
}

// Run executes one load -> compare -> render pass.
// The first failure stops the run. Artifacts written by earlier reporters
// stay on disk and are listed in the returned Outcome.
func (a *Analysis) Run(ctx context.Context) (Outcome, error) {
	start := time.Now()

	dsA, err := a.load(ctx, a.config.LabelA, a.config.InputA)
	if err != nil {
		return Outcome{}, err
	}
	dsB, err := a.load(ctx, a.config.LabelB, a.config.InputB)
	if err != nil {
		return Outcome{}, err
	}

	result := compare.Compare(dsA, dsB)
	if err := compare.Check(result); err != nil {
		return Outcome{}, fmt.Errorf("compare: %w", err)
	}

	c := result.Counts()
	ratios := compare.RatiosOf(result)
	a.logger.Info("comparison finished",
		log.String("label_a", result.LabelA),
		log.String("label_b", result.LabelB),
		log.Int("a", c.A),
		log.Int("b", c.B),
		log.Int("common", c.Common),
		log.Int("only_a", c.OnlyA),
		log.Int("only_b", c.OnlyB),
		log.Int("union", c.Union),
		log.Float64("only_a_of_a", ratios.OnlyAOfA),
		log.Float64("only_b_of_b", ratios.OnlyBOfB),
		log.Float64("common_of_union", ratios.CommonOfUnion),
	)

	out := Outcome{Result: result}
	for _, r := range a.reporters {
		path, err := r.Render(ctx, result)
		if err != nil {
			a.logger.Error("report failed", log.String("report", r.Name()), log.Err(err))
			return out, fmt.Errorf("render %s: %w", r.Name(), err)
		}
		a.logger.Info("report written", log.String("report", r.Name()), log.String("path", path))
		out.Artifacts = append(out.Artifacts, path)
	}

	a.logger.Debug("analysis finished",
		log.Strings("artifacts", out.Artifacts),
		log.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func (a *Analysis) load(ctx context.Context, label, path string) (domain.Dataset, error) {
	names, err := a.source.Load(ctx, path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load %s: %w", label, err)
	}
	a.logger.Debug("dataset loaded",
		log.String("label", label),
		log.String("path", path),
		log.Int("values", len(names)),
	)
	return domain.Dataset{Label: label, Path: path, Names: names}, nil
}
