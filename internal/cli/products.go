package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
	"github.com/jmorascalyr/jarvis-coding/pkg/output"
)

var productsOutput string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the products available for validation",
	Long:  "Display every product taxonomy in the catalog with its input format, target parser, and field counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := taxonomy.Load(cfg.Products.File)
		if err != nil {
			return fmt.Errorf("failed to load product taxonomies: %w", err)
		}

		products := registry.List()
		if productsOutput == "json" {
			return output.JSON(products)
		}

		table := output.NewTable([]string{"PRODUCT", "FORMAT", "PARSER", "FIELDS", "MANDATORY"})
		for _, p := range products {
			table.AddRow([]string{
				p.Name,
				string(p.Format),
				p.Parser,
				fmt.Sprintf("%d", len(p.Taxonomy)),
				fmt.Sprintf("%d", p.Taxonomy.MandatoryCount()),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	productsCmd.Flags().StringVar(&productsOutput, "output", "table", "output format: table, json")
	rootCmd.AddCommand(productsCmd)
}
