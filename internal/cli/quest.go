package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"knight-quest/internal/app"
	"knight-quest/internal/database"
)

// QuestCmd manages the quest list.
func QuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quest",
		Aliases: []string{"q"},
		Short:   "Add, list, complete and abandon quests",
	}

	cmd.AddCommand(questListCmd())
	cmd.AddCommand(questAddCmd())
	cmd.AddCommand(questDoneCmd())
	cmd.AddCommand(questDeleteCmd())
	return cmd
}

func questListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the quest board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				renderQuests(cmd.OutOrStdout(), core.Services.Game.Tasks())
				return nil
			})
		},
	}
}

func questAddCmd() *cobra.Command {
	var frequency string
	var steps int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Enlist a new quest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq := database.Frequency(strings.ToLower(frequency))
			if !freq.IsValid() {
				return fmt.Errorf("invalid frequency %q\nValid frequencies: once, daily, weekly", frequency)
			}

			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				task, err := core.Services.Game.AddTask(ctx, strings.Join(args, " "), freq, steps)
				if err != nil {
					return fmt.Errorf("failed to add quest: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Enlisted %s (%s, %d steps)\n", okMark(), task.Title, task.Frequency, task.Steps)
				fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", task.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(database.Once), "Frequency (once|daily|weekly)")
	cmd.Flags().IntVarP(&steps, "steps", "s", 1, "Steps the quest is worth (1-100)")
	return cmd
}

func questDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <n|id>",
		Short: "Complete a quest, or reopen a completed one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				id, ok := core.Services.Game.Resolve(args[0])
				if !ok {
					return fmt.Errorf("no quest matches %q", args[0])
				}
				res, err := core.Services.Game.ToggleTask(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to update quest: %w", err)
				}
				renderToggle(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func questDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <n|id>",
		Aliases: []string{"rm"},
		Short:   "Abandon a quest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				id, ok := core.Services.Game.Resolve(args[0])
				if !ok {
					return fmt.Errorf("no quest matches %q", args[0])
				}
				task, _, err := core.Services.Game.DeleteTask(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to delete quest: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Abandoned %s\n", okMark(), task.Title)
				return nil
			})
		},
	}
}
