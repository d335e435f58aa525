package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/kayz/slidesmith/internal/persist"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.History.Enabled {
			fmt.Println("history is disabled in config")
			return nil
		}

		store, err := persist.NewStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListGenerations(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no generation runs recorded")
			return nil
		}
		for _, rec := range records {
			line := fmt.Sprintf("%s  %-20s %-6s %4dms  %d violations",
				rec.CreatedAt.Format(time.RFC3339), rec.VariantID, rec.Status,
				rec.DurationMS, rec.Violations)
			if rec.Error != "" {
				line += "  " + rec.Error
			}
			fmt.Println(line)
		}

		counts, err := store.CountByVariant()
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Println()
		for _, id := range ids {
			fmt.Printf("%-20s %d total runs\n", id, counts[id])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
