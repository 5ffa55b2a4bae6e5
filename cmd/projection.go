package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
)

var (
	flagProjQueries   int
	flagProjAvgInput  float64
	flagProjAvgOutput float64
)

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Project daily cost from per-query averages",
	Long:  "Scales average per-query token usage to a full day of traffic and prices it with the backend's rates.",
	RunE:  runProjection,
}

func init() {
	projectionCmd.Flags().IntVar(&flagProjQueries, "queries", 225, "Expected queries per day")
	projectionCmd.Flags().Float64Var(&flagProjAvgInput, "avg-input", 0, "Average input tokens per query (0 uses recorded averages)")
	projectionCmd.Flags().Float64Var(&flagProjAvgOutput, "avg-output", 0, "Average output tokens per query (0 uses recorded averages)")
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	backend := rt.backend()
	avgIn, avgOut := flagProjAvgInput, flagProjAvgOutput

	// Fall back to historical averages from the usage database.
	if avgIn == 0 || avgOut == 0 {
		records, err := rt.store.LoadAll()
		if err != nil {
			return fmt.Errorf("loading usage records: %w", err)
		}
		rt.usage.Seed(records)
		avg := rt.usage.Averages(backend)
		if avg.TotalQueries == 0 {
			return fmt.Errorf("no recorded usage for backend %q; pass --avg-input and --avg-output", backend)
		}
		if avgIn == 0 {
			avgIn = avg.AvgInputTokens
		}
		if avgOut == 0 {
			avgOut = avg.AvgOutputTokens
		}
	}

	proj, ok := rt.calc.ProjectDaily(flagProjQueries, avgIn, avgOut, backend)
	if !ok {
		return fmt.Errorf("no pricing configured for backend %q", backend)
	}

	fmt.Println(cli.RenderTitle("Daily Cost Projection"))
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d queries/day on %s (avg %s in, %s out)", flagProjQueries, backend, cli.FormatAvg(avgIn), cli.FormatAvg(avgOut)),
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Input Tokens", cli.FormatAvg(proj.InputTokens)},
			{"Output Tokens", cli.FormatAvg(proj.OutputTokens)},
			{"---"},
			{"Input Cost", fmt.Sprintf("$%.6f", proj.InputCost)},
			{"Output Cost", fmt.Sprintf("$%.6f", proj.OutputCost)},
			{"Total Cost", fmt.Sprintf("$%.6f", proj.TotalCost)},
		},
	}))

	return nil
}
