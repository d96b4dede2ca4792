// Command household-planner projects household finances over time,
// deterministically or via Monte Carlo simulation.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hplan/household-planner/internal/calculation"
	"github.com/hplan/household-planner/internal/config"
	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/internal/logging"
	"github.com/hplan/household-planner/internal/output"
	"github.com/hplan/household-planner/pkg/money"
)

var (
	verbose bool

	inputPath  string
	mode       string
	trials     int
	seed       int64
	workers    int
	timeout    time.Duration
	format     string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "household-planner",
	Short: "Household scenario projection engine",
	Long: `household-planner expands recurring cash flows, amortizes loans, grows
accounts, and settles taxes month by month to project a household's net
worth, either deterministically or across many randomized Monte Carlo
trials.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a scenario file over its horizon",
	RunE:  runProject,
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example scenario file",
	RunE:  runExample,
}

func runProject(cmd *cobra.Command, args []string) error {
	logger := logging.New(os.Stderr, verbose)

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(inputPath)
	if err != nil {
		return err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(logger)

	opts := calculation.MonteCarloOptions{
		Trials:   trials,
		SeedBase: seed,
		Workers:  workers,
		Timeout:  timeout,
	}
	result, err := engine.Project(cmd.Context(), input, domain.ProjectionMode(mode), opts)
	if err != nil {
		return err
	}

	dest := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		defer f.Close()
		dest = f
	}
	return output.WriteFormatted(dest, format, output.Report{Input: input, Result: result})
}

func runExample(cmd *cobra.Command, args []string) error {
	scenario := config.CreateExampleScenario()
	parser := config.NewInputParser()

	path := outputPath
	if path == "" {
		path = "scenario.yaml"
	}
	if err := parser.SaveToFile(scenario, path); err != nil {
		return err
	}
	fmt.Printf("Example scenario written to %s\n", path)
	return nil
}

var (
	magi         string
	filingStatus string
)

var irmaaCmd = &cobra.Command{
	Use:   "irmaa",
	Short: "Look up Medicare IRMAA surcharges for a MAGI",
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := decimal.NewFromString(magi)
		if err != nil {
			return fmt.Errorf("invalid --magi value %q: %w", magi, err)
		}
		status := domain.FilingStatus(filingStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid --filing value %q (single or married_jointly)", filingStatus)
		}

		calc := calculation.NewMedicareCalculator()
		bracket := calc.LookupBracket(income, status)
		fmt.Printf("MAGI %s (%s)\n", money.FromDecimal(income).Format(), status)
		if bracket.UpperBound != nil {
			fmt.Printf("Bracket: %s to %s\n",
				money.FromDecimal(bracket.LowerBound).Format(),
				money.FromDecimal(*bracket.UpperBound).Format())
		} else {
			fmt.Printf("Bracket: above %s\n", money.FromDecimal(bracket.LowerBound).Format())
		}
		fmt.Printf("Part B surcharge: %s/month\n", money.FromDecimal(bracket.PartBSurcharge).Format())
		fmt.Printf("Part D surcharge: %s/month\n", money.FromDecimal(bracket.PartDSurcharge).Format())
		fmt.Printf("Part B premium:   %s/month\n", money.FromDecimal(calc.MonthlyPartBPremium(income, status)).Format())
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	projectCmd.Flags().StringVarP(&inputPath, "input", "i", "", "scenario YAML file (required)")
	projectCmd.Flags().StringVarP(&mode, "mode", "m", "deterministic", "projection mode: deterministic or montecarlo")
	projectCmd.Flags().IntVarP(&trials, "trials", "t", 1000, "Monte Carlo trial count")
	projectCmd.Flags().Int64Var(&seed, "seed", 0, "Monte Carlo seed base")
	projectCmd.Flags().IntVar(&workers, "workers", 0, "worker count (default: all CPUs)")
	projectCmd.Flags().DurationVar(&timeout, "timeout", 0, "Monte Carlo deadline (0 = none)")
	projectCmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, or csv")
	projectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write output to file instead of stdout")
	_ = projectCmd.MarkFlagRequired("input")

	exampleCmd.Flags().StringVarP(&outputPath, "output", "o", "scenario.yaml", "path for the example scenario")

	irmaaCmd.Flags().StringVar(&magi, "magi", "", "modified adjusted gross income (required)")
	irmaaCmd.Flags().StringVar(&filingStatus, "filing", "single", "filing status: single or married_jointly")
	_ = irmaaCmd.MarkFlagRequired("magi")

	rootCmd.AddCommand(projectCmd, exampleCmd, irmaaCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
