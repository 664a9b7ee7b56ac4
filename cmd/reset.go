package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algority/algority/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all sessions and transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("This deletes every session and transcript. Continue? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if err := st.Sessions().DeleteAll(context.Background()); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		fmt.Println("All session data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
