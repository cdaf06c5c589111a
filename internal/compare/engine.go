package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/output"
	"github.com/rgehrsitz/homeloan/internal/split"
)

// Strategy names
const (
	StrategyBestSplit     = "best split"
	StrategyOffsetOnly    = "offset only"
	StrategyPlainVariable = "plain variable"
	StrategyPlainFixed    = "plain fixed"
)

// CompareEngine runs the best split against single-account structures of the same loan
type CompareEngine struct {
	Optimizer         *split.SplitOptimizer
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(optimizer *split.SplitOptimizer) *CompareEngine {
	return &CompareEngine{
		Optimizer:         optimizer,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare sweeps the configured loan for its best split, then prices the whole loan on
// the variable offset account, on a plain variable loan and on a plain fixed loan
func (ce *CompareEngine) Compare(ctx context.Context, cfg *domain.Configuration) (*ComparisonSet, error) {
	base := split.RequestFromConfiguration(cfg)

	sweep, err := ce.Optimizer.Sweep(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to find best split: %w", err)
	}

	composition, err := ce.Optimizer.Composer.Compose(ctx, base.WithRatio(sweep.Best.Ratio))
	if err != nil {
		return nil, fmt.Errorf("failed to compose best split: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(
		StrategyBestSplit,
		fmt.Sprintf("%s on the offset tranche, %d year fix on the rest", output.FormatRatio(sweep.Best.Ratio), base.FixedYears),
		[]Phase{
			{Result: composition.OffsetTranche.Result(), Final: true},
			{Result: composition.FixedTranche.Result()},
			{Result: composition.Continuation.Result(), StartYear: base.FixedYears, Final: true},
		},
	)

	composer := ce.Optimizer.Composer
	offsetOnly, err := composer.ComposeOffsetOnly(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s: %w", StrategyOffsetOnly, err)
	}
	plainVariable, err := composer.ComposePlain(base, base.Variable)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s: %w", StrategyPlainVariable, err)
	}
	plainFixed, err := composer.ComposePlain(base, base.Fixed)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s: %w", StrategyPlainFixed, err)
	}

	alternatives := []ComparisonResult{
		ce.MetricsCalculator.CalculateMetrics(StrategyOffsetOnly,
			"whole loan on the variable offset account",
			[]Phase{{Result: offsetOnly.Result(), Final: true}}),
		ce.MetricsCalculator.CalculateMetrics(StrategyPlainVariable,
			"whole loan at the variable rate, no offset",
			[]Phase{{Result: plainVariable.Result(), Final: true}}),
		ce.MetricsCalculator.CalculateMetrics(StrategyPlainFixed,
			"whole loan held at the fixed rate for the full term",
			[]Phase{{Result: plainFixed.Result(), Final: true}}),
	}
	for i := range alternatives {
		alternatives[i] = ce.MetricsCalculator.CalculateComparison(alternatives[i], baseResult)
	}

	compSet := &ComparisonSet{
		BaseStrategyName:   StrategyBestSplit,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
