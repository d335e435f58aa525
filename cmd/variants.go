package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List available layout variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, _ := buildEngine(cfg, nil)

		ids, err := eng.Specs().List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("no variants found")
			return nil
		}
		for _, id := range ids {
			spec, err := eng.Specs().Load(id)
			if err != nil {
				fmt.Printf("%s  (unloadable: %v)\n", id, err)
				continue
			}
			fmt.Printf("%s  %s  %d elements\n", id, spec.SlideType, len(spec.Elements))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
