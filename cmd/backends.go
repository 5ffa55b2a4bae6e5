package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
	"github.com/liralabs/lirabot/internal/pricing"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List backends, availability, and pricing",
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	table := pricing.DefaultTable.Merge(pricingOverrides(rt.cfg))

	var rows [][]string
	for _, name := range rt.gw.Backends() {
		status := "not configured"
		if rt.gw.IsAvailable(name) {
			status = "ready"
		}
		in, out := "free", "free"
		if entry, ok := table.Lookup(name); ok {
			in = fmt.Sprintf("$%.3f", entry.InputPerMTok)
			out = fmt.Sprintf("$%.3f", entry.OutputPerMTok)
		}
		rows = append(rows, []string{name, modelNameFor(name), status, in, out})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Backends",
		Headers: []string{"Backend", "Model", "Status", "In /MTok", "Out /MTok"},
		Rows:    rows,
	}))

	return nil
}
