package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/userdata"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learner data for the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		account := resolveAccount(cmd)

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Reset all data for account %q? [y/N] ", account)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
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

		if err := st.Write(cmd.Context(), account, userdata.Empty()); err != nil {
			return fmt.Errorf("reset account document: %w", err)
		}
		fmt.Printf("Account %q reset.\n", account)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
