package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algority/algority/internal/catalog"
)

var coachCmd = &cobra.Command{
	Use:   "coach <problem-id>",
	Short: "Start or resume a coaching session for a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := catalog.GetProblem(args[0]); err != nil {
			return fmt.Errorf("%w (see 'algority problems' for the list)", err)
		}
		return runApp(cmd, args[0])
	},
}
