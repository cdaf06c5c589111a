package split

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/homeloan/internal/calculation"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SplitOptimizer finds the split ratio with the lowest total interest plus fees
// by evaluating a uniform grid over [0, 1].
type SplitOptimizer struct {
	Composer *PhaseComposer
	Options  SweepOptions
	Logger   calculation.Logger
}

// NewSplitOptimizer creates an optimizer with the given options
func NewSplitOptimizer(options SweepOptions) *SplitOptimizer {
	return &SplitOptimizer{
		Composer: NewPhaseComposer(),
		Options:  options,
		Logger:   calculation.NopLogger{},
	}
}

// NewDefaultSplitOptimizer creates an optimizer with the 100-point baseline grid
func NewDefaultSplitOptimizer() *SplitOptimizer {
	return NewSplitOptimizer(DefaultSweepOptions())
}

// SetLogger sets the logger for the optimizer and its composer; nil restores the no-op logger
func (o *SplitOptimizer) SetLogger(l calculation.Logger) {
	o.Logger = calculation.LoggerOrNop(l)
	if o.Composer != nil {
		o.Composer.SetLogger(l)
	}
}

// GridRatios returns points evenly spaced ratios k/(points-1), both ends included
func GridRatios(points int) []decimal.Decimal {
	return gridBetween(decimal.Zero, decimal.NewFromInt(1), points)
}

func gridBetween(lo, hi decimal.Decimal, points int) []decimal.Decimal {
	if points < 2 {
		return []decimal.Decimal{lo}
	}
	ratios := make([]decimal.Decimal, points)
	last := decimal.NewFromInt(int64(points - 1))
	span := hi.Sub(lo)
	for k := 0; k < points; k++ {
		switch k {
		case 0:
			ratios[k] = lo
		case points - 1:
			ratios[k] = hi
		default:
			ratios[k] = lo.Add(span.Mul(decimal.NewFromInt(int64(k))).Div(last))
		}
	}
	return ratios
}

// Sweep evaluates every grid ratio for base and selects the minimum total cost.
// Ratios without a valid continuation point stay in the result flagged unattainable;
// any other failure aborts the sweep.
func (o *SplitOptimizer) Sweep(ctx context.Context, base ComposeRequest) (*SweepResult, error) {
	if err := o.Options.Validate(); err != nil {
		return nil, err
	}
	if err := base.WithRatio(decimal.Zero).Validate(); err != nil {
		return nil, err
	}
	log := calculation.LoggerOrNop(o.Logger)

	scenarios, err := o.evaluate(ctx, base, GridRatios(o.Options.Points))
	if err != nil {
		return nil, err
	}

	bestIdx, attainable := selectBest(scenarios)
	if bestIdx < 0 {
		log.Warnf("none of %d split ratios is attainable", len(scenarios))
		return nil, fmt.Errorf("sweep over %d ratios: %w", len(scenarios), ErrNoAttainableSplit)
	}

	result := &SweepResult{
		Request:    base,
		Scenarios:  scenarios,
		Best:       scenarios[bestIdx],
		BestIndex:  bestIdx,
		Attainable: attainable,
	}
	log.Infof("swept %d split ratios: %s", len(scenarios), result.Summary())

	if o.Options.Refine {
		refined, err := o.refine(ctx, base, scenarios, bestIdx)
		if err != nil {
			return nil, err
		}
		result.Refined = refined
	}

	return result, nil
}

// refine searches a finer grid between the neighbours of the best grid point
func (o *SplitOptimizer) refine(ctx context.Context, base ComposeRequest, scenarios []domain.SplitScenario, bestIdx int) (*domain.SplitScenario, error) {
	log := calculation.LoggerOrNop(o.Logger)

	lo := scenarios[max(bestIdx-1, 0)].Ratio
	hi := scenarios[min(bestIdx+1, len(scenarios)-1)].Ratio

	fine, err := o.evaluate(ctx, base, gridBetween(lo, hi, o.Options.RefinePoints))
	if err != nil {
		return nil, err
	}
	idx, _ := selectBest(fine)
	if idx < 0 {
		log.Warnf("refinement between %s and %s found no attainable ratio", lo.StringFixed(4), hi.StringFixed(4))
		return nil, nil
	}

	refined := fine[idx]
	log.Infof("refined split %s%% offset, total interest+fees %s",
		refined.RatioPercent().StringFixed(2), refined.TotalCost.StringFixed(2))
	return &refined, nil
}

// evaluate composes each ratio, in order or across Workers goroutines.
// Each goroutine writes only its own slot, so the output order matches ratios.
func (o *SplitOptimizer) evaluate(ctx context.Context, base ComposeRequest, ratios []decimal.Decimal) ([]domain.SplitScenario, error) {
	composer := o.Composer
	if composer == nil {
		composer = NewPhaseComposer()
	}
	scenarios := make([]domain.SplitScenario, len(ratios))

	if o.Options.Workers <= 1 {
		for i, ratio := range ratios {
			scenario, err := o.evaluateOne(ctx, composer, base.WithRatio(ratio))
			if err != nil {
				return nil, err
			}
			scenarios[i] = scenario
		}
		return scenarios, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Options.Workers)
	for i, ratio := range ratios {
		g.Go(func() error {
			scenario, err := o.evaluateOne(gctx, composer, base.WithRatio(ratio))
			if err != nil {
				return err
			}
			scenarios[i] = scenario
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (o *SplitOptimizer) evaluateOne(ctx context.Context, composer *PhaseComposer, req ComposeRequest) (domain.SplitScenario, error) {
	composition, err := composer.Compose(ctx, req)
	if err == nil {
		return composition.Scenario, nil
	}
	if errors.Is(err, calculation.ErrInvalidScenario) {
		return domain.SplitScenario{
			Ratio:                  req.Ratio,
			ZeroInterestPeriod:     -1,
			ContinuationStartIndex: -1,
			Attainable:             false,
			Reason:                 err.Error(),
		}, nil
	}
	return domain.SplitScenario{}, fmt.Errorf("split ratio %s: %w", req.Ratio.StringFixed(4), err)
}

// selectBest returns the index of the cheapest attainable scenario, the first on ties,
// and the number of attainable scenarios. The index is -1 when none is attainable.
func selectBest(scenarios []domain.SplitScenario) (int, int) {
	best := -1
	attainable := 0
	for i, s := range scenarios {
		if !s.Attainable {
			continue
		}
		attainable++
		if best < 0 || s.TotalCost.LessThan(scenarios[best].TotalCost) {
			best = i
		}
	}
	return best, attainable
}
