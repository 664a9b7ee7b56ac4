package cmd

import (
	"github.com/algority/algority/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algority",
	Short: "AI coding-interview coach",
	Long:  "Algority — terminal coach that walks you through interview problems Socratically, one reasoning phase at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ALGORITY_DB env var)")

	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ALGORITY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
