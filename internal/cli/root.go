package cli

import (
	"context"

	"github.com/spf13/cobra"

	"knight-quest/internal/app"
	"knight-quest/internal/config"
)

// RootCmd assembles the knight-quest command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "knight-quest",
		Short: "Knight Quest - a to-do list where every finished quest forges your armor",
		Long: `Knight Quest turns quests into steps along a map. Every 10 steps opens a
chest with a new armor set, every 4 steps uncovers a page of the chronicle.

Run "serve" to start the Telegram bot, or manage quests from the shell.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(QuestCmd())
	rootCmd.AddCommand(ArmorCmd())
	rootCmd.AddCommand(ChronicleCmd())
	rootCmd.AddCommand(WeekCmd())
	rootCmd.AddCommand(ExportCmd())

	return rootCmd
}

// withCore loads the configuration and saved game, runs fn and closes everything.
func withCore(cmd *cobra.Command, fn func(ctx context.Context, core *app.Core) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	core, err := app.NewCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	return fn(ctx, core)
}
