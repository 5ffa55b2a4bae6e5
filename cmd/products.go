package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the loaded product catalog",
	RunE:  runProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if len(rt.products) == 0 {
		fmt.Println("No product catalog available.")
		return nil
	}

	rows := make([][]string, 0, len(rt.products))
	for _, p := range rt.products {
		rows = append(rows, []string{
			p.Name,
			p.Brand,
			fmt.Sprintf("$%.2f", p.Price),
			p.SkinType,
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d products", len(rt.products)),
		Headers: []string{"Product", "Brand", "Price", "Skin Type"},
		Rows:    rows,
	}))

	return nil
}
