package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/stats"
	"github.com/ymatsui/kijun/internal/userdata"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-standard learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadAccountData(cmd)
		if err != nil {
			return err
		}

		cat := catalog.Default()
		o := stats.BuildOverview(cat, d.QuizResults)

		fmt.Printf("%-10s  %-36s  %8s  %8s  %s\n", "ID", "Title", "Progress", "Accuracy", "Mastered")
		fmt.Println(strings.Repeat("─", 80))

		for _, std := range cat.Standards() {
			st := stats.ForStandard(std.ID, cat, d.QuizResults)
			mastered := ""
			if st.IsMastered {
				mastered = "✓"
			}
			title := std.Title
			if len([]rune(title)) > 18 {
				title = string([]rune(title)[:18])
			}
			fmt.Printf("%-10s  %-36s  %7d%%  %7d%%  %s\n",
				std.ID, title, st.Progress, st.Accuracy, mastered)
		}

		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%d/%d standards mastered, %d quizzes answered, %d weak\n",
			o.MasteredStandards, o.TotalStandards, o.AnsweredQuizzes, o.WeakQuizzes)
		return nil
	},
}

// loadAccountData reads the account document directly, without the sync
// engine. A missing document reads as empty defaults.
func loadAccountData(cmd *cobra.Command) (userdata.Data, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return userdata.Data{}, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := docstore.Open(dbPath)
	if err != nil {
		return userdata.Data{}, fmt.Errorf("open document store: %w", err)
	}
	defer st.Close()

	d, err := st.Load(cmd.Context(), resolveAccount(cmd))
	if errors.Is(err, docstore.ErrNotFound) {
		return userdata.Empty(), nil
	}
	if err != nil {
		return userdata.Data{}, fmt.Errorf("load account document: %w", err)
	}
	return d, nil
}
