package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rgehrsitz/homeloan/internal/config"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/output"
	"github.com/rgehrsitz/homeloan/internal/split"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// reportTarget is where a rendered report goes
type reportTarget struct {
	Format string
	Export string
}

func targetFromFlags(cmd *cobra.Command) reportTarget {
	format, _ := cmd.Flags().GetString("format")
	export, _ := cmd.Flags().GetString("export")
	return reportTarget{Format: format, Export: export}
}

// writeReport prints the report in the requested format and exports it when asked
func writeReport(w io.Writer, report *output.Report, target reportTarget) error {
	f := output.GetFormatterByName(target.Format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", target.Format,
			strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(data))

	if target.Export != "" {
		if err := output.Export(report, target.Export); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nReport exported to %s\n", target.Export)
	}
	return nil
}

func loadConfig(path string) *domain.Configuration {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input-file]",
	Short: "Sweep split ratios and report the cheapest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		opts := split.SweepOptionsFromSettings(cfg.Sweep)
		if points, _ := cmd.Flags().GetInt("points"); points > 0 {
			opts.Points = points
		}
		if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
			opts.Workers = workers
		}
		if cmd.Flags().Changed("refine") {
			opts.Refine, _ = cmd.Flags().GetBool("refine")
		}
		debugMode, _ := cmd.Flags().GetBool("debug")

		ctx, cancel := interruptContext()
		defer cancel()

		if err := runOptimize(ctx, cmd.OutOrStdout(), cfg, opts, debugMode, targetFromFlags(cmd)); err != nil {
			log.Fatal(err)
		}
	},
}

// runOptimize sweeps the configured loan and reports the optimum with its phase breakdown
func runOptimize(ctx context.Context, w io.Writer, cfg *domain.Configuration, opts split.SweepOptions, debugMode bool, target reportTarget) error {
	optimizer := split.NewSplitOptimizer(opts)
	if debugMode {
		optimizer.SetLogger(simpleCLILogger{})
	}

	base := split.RequestFromConfiguration(cfg)
	result, err := optimizer.Sweep(ctx, base)
	if err != nil {
		return err
	}

	composition, err := optimizer.Composer.Compose(ctx, base.WithRatio(result.Best.Ratio))
	if err != nil {
		return fmt.Errorf("composing best split: %w", err)
	}

	report := &output.Report{
		Title:       "Split optimization",
		GeneratedAt: time.Now(),
		Purchase:    output.NewPurchaseSummary(cfg.Purchase),
		Sweep:       result,
		Composition: output.NewCompositionSection(composition),
	}
	return writeReport(w, report, target)
}

var splitCmd = &cobra.Command{
	Use:   "split [input-file]",
	Short: "Break down the cost of one split ratio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		ratioFlag, _ := cmd.Flags().GetString("ratio")
		ratio, err := decimal.NewFromString(ratioFlag)
		if err != nil {
			log.Fatalf("invalid ratio %q: %v", ratioFlag, err)
		}
		debugMode, _ := cmd.Flags().GetBool("debug")

		ctx, cancel := interruptContext()
		defer cancel()

		if err := runSplit(ctx, cmd.OutOrStdout(), cfg, ratio, debugMode, targetFromFlags(cmd)); err != nil {
			log.Fatal(err)
		}
	},
}

// runSplit composes the three phases at one ratio
func runSplit(ctx context.Context, w io.Writer, cfg *domain.Configuration, ratio decimal.Decimal, debugMode bool, target reportTarget) error {
	composer := split.NewPhaseComposer()
	if debugMode {
		composer.SetLogger(simpleCLILogger{})
	}

	composition, err := composer.Compose(ctx, split.RequestFromConfiguration(cfg).WithRatio(ratio))
	if err != nil {
		return err
	}

	report := &output.Report{
		Title:       "Split " + output.FormatRatio(ratio) + " offset",
		GeneratedAt: time.Now(),
		Purchase:    output.NewPurchaseSummary(cfg.Purchase),
		Composition: output.NewCompositionSection(composition),
	}
	return writeReport(w, report, target)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [input-file]",
	Short: "Print the payment schedule of the whole loan on one account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		plain, _ := cmd.Flags().GetBool("plain")
		product, _ := cmd.Flags().GetString("product")

		if err := runSchedule(cmd.OutOrStdout(), cfg, plain, product, targetFromFlags(cmd)); err != nil {
			log.Fatal(err)
		}
	},
}

// runSchedule amortizes the whole loan on the variable offset account, or on a plain
// account at either product's terms
func runSchedule(w io.Writer, cfg *domain.Configuration, plain bool, product string, target reportTarget) error {
	composer := split.NewPhaseComposer()
	req := split.RequestFromConfiguration(cfg)

	var section *output.ScheduleSection
	if plain {
		var terms split.ProductTerms
		switch strings.ToLower(product) {
		case "variable":
			terms = req.Variable
		case "fixed":
			terms = req.Fixed
		default:
			return fmt.Errorf("unknown product %q (use variable or fixed)", product)
		}

		account, err := composer.ComposePlain(req, terms)
		if err != nil {
			return err
		}
		section = output.NewScheduleSection("Plain "+strings.ToLower(product)+" loan", account)
	} else {
		account, err := composer.ComposeOffsetOnly(req)
		if err != nil {
			return err
		}
		section = output.NewScheduleSection("Variable loan with offset", account)
	}

	report := &output.Report{
		Title:       "Payment schedule",
		GeneratedAt: time.Now(),
		Purchase:    output.NewPurchaseSummary(cfg.Purchase),
		Schedule:    section,
	}
	return writeReport(w, report, target)
}
