package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/kaisetsu"
	"github.com/ymatsui/kijun/internal/llm"
)

var kaisetsuCmd = &cobra.Command{
	Use:   "kaisetsu <standard-id>",
	Short: "Generate AI commentary for a standard",
	Long: `Generate plain-language AI commentary for one standard and print it.

The commentary is personalized with the quizzes the account has answered
incorrectly. Useful for evaluating prompt quality without the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		std, ok := cat.StandardByID(args[0])
		if !ok {
			return fmt.Errorf("no standard found for %q", args[0])
		}

		d, err := loadAccountData(cmd)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := docstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, st)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		svc := kaisetsu.New(provider, kaisetsu.DefaultConfig())
		c, err := svc.Generate(ctx, std, cat, d.QuizResults)
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n\n", std.ID, std.Title)
		fmt.Println(c.Summary)
		fmt.Println()
		for _, p := range c.KeyPoints {
			fmt.Println("・" + p)
		}
		if c.Example != "" {
			fmt.Println()
			fmt.Println("例: " + c.Example)
		}
		return nil
	},
}
