package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmorascalyr/jarvis-coding/internal/generator"
	"github.com/jmorascalyr/jarvis-coding/internal/tagger"
	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
	"github.com/jmorascalyr/jarvis-coding/pkg/output"
)

var (
	generateCount int
	generateToken string
)

var generateCmd = &cobra.Command{
	Use:   "generate <product>",
	Short: "Print sample synthetic events for a product",
	Long: `Generate the synthetic events that validate would submit, without
touching any endpoint. Useful for inspecting payload shape per format.

Examples:
  jarvis generate okta_authentication
  jarvis generate cisco_asa --count 5
  jarvis generate fortinet_fortigate --token jv-demo-0-abcd`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := taxonomy.Load(cfg.Products.File)
		if err != nil {
			return fmt.Errorf("failed to load product taxonomies: %w", err)
		}
		p, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown product %q, run 'jarvis products' for the catalog", args[0])
		}

		for i := 0; i < generateCount; i++ {
			event, err := generator.Generate(p)
			if err != nil {
				return err
			}
			if generateToken != "" {
				tg, err := tagger.ForFormat(p.Format)
				if err != nil {
					return err
				}
				if event, err = tg.Inject(event, generateToken); err != nil {
					return err
				}
			}
			switch e := event.(type) {
			case string:
				fmt.Println(e)
			default:
				if err := output.JSON(e); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateCount, "count", 1, "number of events to generate")
	generateCmd.Flags().StringVar(&generateToken, "token", "", "inject this tracking token into each event")
	rootCmd.AddCommand(generateCmd)
}
