package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pattern mastery across completed sessions",
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

		svc := coaching.NewService(st.Sessions(), st.Messages(), nil, nil, nil, nil, zap.NewNop())
		summary, err := svc.PatternSummary(context.Background())
		if err != nil {
			return fmt.Errorf("aggregate mastery: %w", err)
		}

		if len(summary) == 0 {
			fmt.Println("No completed sessions yet. Run 'algority' to get coached.")
			return nil
		}

		ids := make([]string, 0, len(summary))
		for id := range summary {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("%-22s %-12s %9s %10s %10s\n", "Pattern", "State", "Sessions", "Questions", "Accuracy")
		fmt.Println(strings.Repeat("─", 68))
		for _, id := range ids {
			pm := summary[id]
			name := id
			if p, err := catalog.GetPattern(id); err == nil {
				name = p.Name
			}
			fmt.Printf("%-22s %-12s %9d %10d %9.0f%%\n",
				name, pm.State().Label(), pm.Sessions, pm.QuestionsSeen, pm.Accuracy()*100)
		}
		return nil
	},
}
