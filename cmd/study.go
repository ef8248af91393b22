package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a quiz session immediately",
	Long: `Launch the TUI straight into a quiz session, skipping the menu.

Modes: fixed-count (default), weak-point, category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		count, _ := cmd.Flags().GetString("count")
		category, _ := cmd.Flags().GetString("category")

		params := session.ParseParams(mode, count, category)
		return runApp(cmd, &params)
	},
}

func init() {
	studyCmd.Flags().String("mode", "", "Session mode: fixed-count, weak-point, or category")
	studyCmd.Flags().String("count", "", "Number of questions for fixed-count mode")
	studyCmd.Flags().String("category", "", "Category name for category mode")
}
