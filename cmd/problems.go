package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/store"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List catalog problems and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, _ := cmd.Flags().GetString("pattern")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		// Status derivation needs no generator or evaluator.
		svc := coaching.NewService(st.Sessions(), st.Messages(), nil, nil, nil, nil, zap.NewNop())
		statuses, err := svc.ProblemStatuses(context.Background())
		if err != nil {
			return fmt.Errorf("derive statuses: %w", err)
		}

		problems := catalog.AllProblems()
		if pattern != "" {
			problems = catalog.ByPattern(pattern)
			if len(problems) == 0 {
				return fmt.Errorf("no problems for pattern %q", pattern)
			}
		}

		fmt.Printf("%-2s %-22s %-28s %-8s %s\n", "", "ID", "Title", "Diff", "Patterns")
		fmt.Println(strings.Repeat("─", 90))
		for _, p := range problems {
			names := make([]string, 0, len(p.PatternIDs))
			for _, pat := range p.Patterns() {
				names = append(names, pat.Name)
			}
			fmt.Printf("%-2s %-22s %-28s %-8s %s\n",
				statuses[p.ID].Icon(), p.ID, p.Title, p.Difficulty.Label(), strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	problemsCmd.Flags().StringP("pattern", "p", "", "Filter by pattern ID (e.g. hash-map, two-pointers)")
}
