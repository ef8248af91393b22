package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ymatsui/kijun/internal/app"
	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/kaisetsu"
	"github.com/ymatsui/kijun/internal/llm"
	"github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/syncer"
	"github.com/ymatsui/kijun/internal/userdata"
)

// runApp opens the document store, signs the account in, builds
// dependencies, and launches the TUI. When start is non-nil the app
// opens directly into that quiz session instead of the home menu.
func runApp(cmd *cobra.Command, start *session.Params) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := docstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer st.Close()

	account := resolveAccount(cmd)
	data := userdata.NewStore()
	engine := syncer.NewEngine(data, st)
	engine.SignIn(ctx, account)
	defer engine.Flush()

	opts := app.Options{
		Catalog:      catalog.Default(),
		Data:         data,
		Engine:       engine,
		Account:      account,
		StartSession: start,
	}

	// AI commentary is optional; the app works without it.
	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI commentary will be unavailable.")
	} else {
		opts.AI = kaisetsu.New(provider, kaisetsu.DefaultConfig())
	}

	return app.Run(opts)
}
