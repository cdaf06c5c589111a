package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/rgehrsitz/homeloan/internal/compare"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/split"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the best split against single-account loans",
	Long: `Compare the cheapest split against the same loan held entirely on the
variable offset account, on a plain variable loan and on a plain fixed loan.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		opts := split.SweepOptionsFromSettings(cfg.Sweep)
		if points, _ := cmd.Flags().GetInt("points"); points > 0 {
			opts.Points = points
		}
		if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
			opts.Workers = workers
		}
		format, _ := cmd.Flags().GetString("format")

		ctx, cancel := interruptContext()
		defer cancel()

		if err := runCompare(ctx, cmd.OutOrStdout(), cfg, opts, format, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

// runCompare prices each loan structure and prints the comparison
func runCompare(ctx context.Context, w io.Writer, cfg *domain.Configuration, opts split.SweepOptions, format, configPath string) error {
	engine := compare.NewCompareEngine(split.NewSplitOptimizer(opts))

	compSet, err := engine.Compare(ctx, cfg)
	if err != nil {
		return err
	}
	compSet.ConfigPath = configPath

	out, err := compare.FormatComparison(compSet, format)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
