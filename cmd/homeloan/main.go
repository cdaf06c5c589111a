package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/homeloan/internal/config"
	"github.com/rgehrsitz/homeloan/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "homeloan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "homeloan",
	Short: "Home loan split calculator",
	Long: "Finds the share of a home loan to hold on a variable offset account, with the rest on a " +
		"fixed-rate account, that minimizes total interest and fees over the loan term",
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		cfg, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Configuration file %s is valid\n", inputFile)
		fmt.Fprintf(w, "  Loan amount:     %s\n", output.FormatCurrency(cfg.Purchase.LoanAmount()))
		fmt.Fprintf(w, "  Deposit:         %s\n", output.FormatCurrency(cfg.Purchase.Deposit()))
		fmt.Fprintf(w, "  Offset starting: %s\n", output.FormatCurrency(cfg.Purchase.FundsSurplus()))
		fmt.Fprintf(w, "  Term:            %d years, %d fixed, %s payments\n",
			cfg.Loan.TermYears, cfg.Loan.FixedYears, cfg.Loan.Frequency)
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example configuration",
	Long:  "Writes an example configuration to output-file, or prints it when no file is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.CreateExampleConfiguration()

		if len(args) == 1 {
			if err := config.SaveConfiguration(cfg, args[0]); err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
			return
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

func init() {
	optimizeCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	optimizeCmd.Flags().StringP("export", "e", "", "Also export the report to a file (.xlsx, .pdf, .csv, .json, .txt)")
	optimizeCmd.Flags().Int("points", 0, "Grid points over [0, 1] (default from config)")
	optimizeCmd.Flags().Int("workers", 0, "Concurrent evaluations (default from config)")
	optimizeCmd.Flags().Bool("refine", false, "Refine around the best grid point")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug output for each evaluated split")

	splitCmd.Flags().StringP("ratio", "r", "", "Share of the loan on the offset tranche, 0..1 (required)")
	splitCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	splitCmd.Flags().StringP("export", "e", "", "Also export the report to a file (.xlsx, .pdf, .csv, .json, .txt)")
	splitCmd.Flags().Bool("debug", false, "Enable debug output for each phase")
	_ = splitCmd.MarkFlagRequired("ratio")

	scheduleCmd.Flags().Bool("plain", false, "Amortize without an offset account")
	scheduleCmd.Flags().String("product", "variable", "Product for a plain schedule (variable, fixed)")
	scheduleCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	scheduleCmd.Flags().StringP("export", "e", "", "Also export the report to a file (.xlsx, .pdf, .csv, .json, .txt)")

	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Int("points", 0, "Grid points over [0, 1] (default from config)")
	compareCmd.Flags().Int("workers", 0, "Concurrent evaluations (default from config)")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
