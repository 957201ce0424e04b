package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"knight-quest/internal/app"
	"knight-quest/internal/armor"
	"knight-quest/internal/database"
)

// StatusCmd shows the knight and a fresh flavor line.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the knight's level, power and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				renderStatus(cmd.OutOrStdout(), core.Services.Stats.Overview(), core.Services.Game.FlavorText(ctx))
				return nil
			})
		},
	}
}

// ArmorCmd describes the armor worn, or any tier with --tier.
func ArmorCmd() *cobra.Command {
	var tier int
	var all bool

	cmd := &cobra.Command{
		Use:   "armor",
		Short: "Inspect armor sets",
		Long: `Show the armor the knight wears. Use --tier to look at any of the 100 sets
or --all for the whole catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				renderCatalog(cmd.OutOrStdout(), armor.All())
				return nil
			}
			if cmd.Flags().Changed("tier") {
				renderArmor(cmd.OutOrStdout(), armor.ForLevel(tier))
				return nil
			}
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				renderArmor(cmd.OutOrStdout(), core.Services.Game.Armor())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&tier, "tier", "t", 0, "Armor tier to show (0-99)")
	cmd.Flags().BoolVar(&all, "all", false, "List every armor set")
	return cmd
}

// ChronicleCmd prints the story so far.
func ChronicleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chronicle",
		Short: "Read the knight's chronicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				renderChronicle(cmd.OutOrStdout(), core.Services.Game.State().StoryHistory)
				return nil
			})
		},
	}
}

// WeekCmd prints this week's recap.
func WeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Summarise the quests finished this week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				renderWeek(cmd.OutOrStdout(), core.Services.Stats.Weekly(time.Now()))
				return nil
			})
		},
	}
}

// ExportCmd dumps both stored blobs exactly as persisted.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the saved quests and game state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				out := make(map[string]json.RawMessage, 2)
				for _, key := range []string{database.TasksKey, database.StateKey} {
					raw, ok, err := core.Repo.RawBlob(ctx, key)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", key, err)
					}
					switch {
					case !ok:
						raw = "null"
					case !json.Valid([]byte(raw)):
						quoted, _ := json.Marshal(raw)
						raw = string(quoted)
					}
					out[key] = json.RawMessage(raw)
				}

				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode export: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}
