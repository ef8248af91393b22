package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/catalog"
)

var standardCmd = &cobra.Command{
	Use:   "standard",
	Short: "Browse the standards catalog",
}

var standardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all standards (optionally filtered by category or importance)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		importance, _ := cmd.Flags().GetString("importance")

		cat := catalog.Default()

		var standards []catalog.Standard
		switch {
		case category != "" && importance != "":
			return fmt.Errorf("use --category or --importance, not both")
		case category != "":
			standards = cat.StandardsInCategory(category)
			if len(standards) == 0 {
				return fmt.Errorf("no standards found for category %q", category)
			}
		case importance != "":
			for _, s := range cat.Standards() {
				if string(s.Importance) == strings.ToUpper(importance) {
					standards = append(standards, s)
				}
			}
			if len(standards) == 0 {
				return fmt.Errorf("no standards found for importance %q", importance)
			}
		default:
			standards = cat.Standards()
		}

		fmt.Printf("%-10s  %-40s  %-10s  %s\n", "ID", "Title", "Importance", "Category")
		fmt.Println(strings.Repeat("─", 90))

		for _, s := range standards {
			title := s.Title
			if len([]rune(title)) > 20 {
				title = string([]rune(title)[:20])
			}
			fmt.Printf("%-10s  %-40s  %-10s  %s\n", s.ID, title, s.Importance, s.Category)
		}

		fmt.Printf("\n%d standards\n", len(standards))
		return nil
	},
}

var standardShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one standard with its quizzes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		std, ok := cat.StandardByID(args[0])
		if !ok {
			return fmt.Errorf("no standard found for %q", args[0])
		}

		fmt.Printf("%s  %s  [%s]  %s\n\n", std.ID, std.Title, std.Importance, std.Category)
		fmt.Println(std.Content)
		if std.Commentary != "" {
			fmt.Println()
			fmt.Println(std.Commentary)
		}

		quizzes := cat.QuizzesForStandard(std.ID)
		if len(quizzes) > 0 {
			fmt.Println()
			fmt.Println(strings.Repeat("─", 60))
			for i, q := range quizzes {
				fmt.Printf("%d) %s\n", i+1, q.Question)
			}
		}
		return nil
	},
}

func init() {
	standardListCmd.Flags().String("category", "", "Filter by category")
	standardListCmd.Flags().String("importance", "", "Filter by importance (A, B, or C)")

	standardCmd.AddCommand(standardListCmd)
	standardCmd.AddCommand(standardShowCmd)
}
