package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/docstore"
)

var rootCmd = &cobra.Command{
	Use:   "kijun",
	Short: "Terminal drill app for regulatory standards",
	Long:  "Kijun is a terminal study app: read regulatory standards, drill them with quizzes, and track mastery per standard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KIJUN_DB env var)")
	rootCmd.PersistentFlags().String("account", "", "Account to sign in as (overrides KIJUN_ACCOUNT env var)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(standardCmd)
	rootCmd.AddCommand(kaisetsuCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KIJUN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, docstore.EnsureDir(p)
	}
	return docstore.DefaultDBPath()
}

// resolveAccount returns the account ID using --account flag, then
// KIJUN_ACCOUNT env var, then "default".
func resolveAccount(cmd *cobra.Command) string {
	if a, _ := cmd.Flags().GetString("account"); a != "" {
		return a
	}
	if a := os.Getenv("KIJUN_ACCOUNT"); a != "" {
		return a
	}
	return "default"
}
