package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
	"github.com/liralabs/lirabot/internal/simulate"
)

var (
	flagSimCustomers  int
	flagSimVoiceRatio float64
	flagSimSeed       int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a synthetic customer traffic simulation",
	Long:  "Simulates customers issuing text and voice queries against the configured backend, exports a per-interaction CSV, and prints a cost analysis.",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimCustomers, "customers", 50, "Number of simulated customers")
	simulateCmd.Flags().Float64Var(&flagSimVoiceRatio, "voice-ratio", 0.5, "Share of customers using voice (0..1)")
	simulateCmd.Flags().Int64Var(&flagSimSeed, "seed", 0, "Random seed (0 uses current time)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	backend := rt.backend()
	opts := simulate.DefaultOptions()
	opts.Customers = flagSimCustomers
	opts.VoiceRatio = flagSimVoiceRatio
	opts.Backend = backend

	seed := flagSimSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %d customers using %s...\n", opts.Customers, modelNameFor(backend))

	start := time.Now()
	runner := simulate.NewRunner(rt.mgr, rt.calc, rt.products, seed, rt.log)
	records, sum, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("Simulation complete! Time: %s\n", cli.FormatDuration(time.Since(start)))

	path, err := simulate.ExportCSV(rt.cfg.General.LogDir, records, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Detailed logs saved to %s\n\n", path)

	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Final Cost Analysis",
		Headers: []string{"Component", "Value"},
		Rows: [][]string{
			{"Total Queries", cli.FormatNumber(int64(sum.TotalQueries))},
			{"Voice Queries", cli.FormatNumber(int64(sum.VoiceQueries))},
			{"Input Tokens", cli.FormatTokens(sum.InputTokens)},
			{"Output Tokens", cli.FormatTokens(sum.OutputTokens)},
			{"---"},
			{"AI Cost", fmt.Sprintf("$%.6f", sum.AICost)},
			{"STT Cost (Whisper)", fmt.Sprintf("$%.6f", sum.STTCost)},
			{"TTS Cost (Edge)", fmt.Sprintf("$%.6f", sum.TTSCost)},
			{"GRAND TOTAL", fmt.Sprintf("$%.6f", sum.GrandTotal)},
		},
	}))

	return nil
}
