package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
	"github.com/liralabs/lirabot/internal/ledger"
	"github.com/liralabs/lirabot/internal/logger"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-backend usage statistics",
	Long:  "Aggregates all recorded exchanges from the usage database into per-backend averages and totals.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := ledger.OpenStore(usageDBPath())
	if err != nil {
		return fmt.Errorf("opening usage database: %w", err)
	}
	defer store.Close()

	records, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("loading usage records: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No usage recorded yet.")
		return nil
	}

	backends, err := store.Backends()
	if err != nil {
		return fmt.Errorf("listing backends: %w", err)
	}

	usage := ledger.New(logger.Nop())
	usage.Seed(records)

	fmt.Println(cli.RenderTitle("Usage Statistics"))
	fmt.Println()

	rows := make([][]string, 0, len(backends))
	var maxCost float64
	type share struct {
		name string
		cost float64
	}
	var shares []share

	for _, name := range backends {
		avg := usage.Averages(name)
		rows = append(rows, []string{
			name,
			cli.FormatNumber(int64(avg.TotalQueries)),
			cli.FormatAvg(avg.AvgInputTokens),
			cli.FormatAvg(avg.AvgOutputTokens),
			fmt.Sprintf("$%.8f", avg.AvgCostPerQuery),
			cli.FormatCost(avg.TotalCost),
		})
		shares = append(shares, share{name, avg.TotalCost})
		if avg.TotalCost > maxCost {
			maxCost = avg.TotalCost
		}
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d exchanges recorded", len(records)),
		Headers: []string{"Backend", "Queries", "Avg In", "Avg Out", "Avg Cost", "Total Cost"},
		Rows:    rows,
	}))

	if len(shares) > 1 {
		fmt.Println("  Cost by backend")
		for _, s := range shares {
			fmt.Println(cli.RenderShareBar(s.name, s.cost, maxCost, 40))
		}
		fmt.Println()
	}

	return nil
}
