package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algority/algority/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect model usage",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated model call and token totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		totals, err := st.Events().UsageTotals(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if totals.Calls == 0 {
			fmt.Println("No model usage recorded yet.")
			return nil
		}

		fmt.Printf("Calls:          %d\n", totals.Calls)
		fmt.Printf("Failures:       %d\n", totals.Failures)
		fmt.Printf("Input tokens:   %d\n", totals.InputTokens)
		fmt.Printf("Output tokens:  %d\n", totals.OutputTokens)
		fmt.Printf("Total tokens:   %d\n", totals.InputTokens+totals.OutputTokens)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmStatsCmd)
}
