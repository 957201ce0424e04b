package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/services"
	"knight-quest/internal/utils"
)

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func renderQuests(w io.Writer, tasks []database.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "The quest board is empty. Enlist one with `knight-quest quest add`.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tFREQ\tSTEPS\tTITLE\tID")
	for i, task := range tasks {
		status := color.New(color.FgYellow).Sprint("open")
		if task.Completed {
			status = color.New(color.FgGreen).Sprint("done")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", i+1, status, task.Frequency, task.Steps, task.Title, shortID(task.ID))
	}
	tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderToggle(w io.Writer, res *services.ToggleResult) {
	if !res.Completed {
		fmt.Fprintf(w, "%s Reopened %s. Progress already earned is kept.\n", color.New(color.FgYellow).Sprint("↺"), res.Task.Title)
		return
	}

	p := res.Progress
	fmt.Fprintf(w, "%s Completed %s: +%d steps, power %.0f → %.0f\n", okMark(), res.Task.Title, p.StepsAdded, p.PowerBefore, p.PowerAfter)
	fmt.Fprintf(w, "  %s %d/%d to the next chest\n", utils.ProgressBar(services.Tile(p.CountAfter), services.StepsPerChest), services.Tile(p.CountAfter), services.StepsPerChest)

	if res.Reward != nil {
		fmt.Fprintf(w, "%s Level %d! New armor: %s\n",
			color.New(color.FgHiMagenta, color.Bold).Sprint("CHEST OPENED"), res.Reward.Level, res.Reward.Armor.Name)
	}
	if res.Story.Fired {
		fmt.Fprintf(w, "\n%s\n  %s\n", color.New(color.FgCyan).Sprint("A page is found..."), res.Story.Fragment)
	}
}

func renderStatus(w io.Writer, o services.Overview, flavor string) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s, level %d\n", bold.Sprint(o.KnightName), o.Level)
	fmt.Fprintf(w, "  Armor:     %s (×%.2f)\n", o.Armor.Name, o.Armor.PowerMultiplier)
	fmt.Fprintf(w, "  Power:     %.0f / %.0f\n", o.TotalPower, o.PowerCeiling)
	fmt.Fprintf(w, "  Steps:     %d\n", o.CompletedSteps)
	fmt.Fprintf(w, "  Map:       %s %d to the next chest\n", utils.ProgressBar(o.Tile, services.StepsPerChest), o.StepsToChest)
	fmt.Fprintf(w, "  Quests:    %d/%d cleared\n", o.Cleared, o.Total)
	fmt.Fprintf(w, "  Chronicle: %d pages\n", o.StoriesTold)
	if o.NextFeature != nil {
		fmt.Fprintf(w, "  Next gear: %s at level %d\n", o.NextFeature.Name, o.NextFeature.MinTier)
	}
	fmt.Fprintf(w, "\n%s\n", color.New(color.Italic).Sprint(flavor))
}

func renderArmor(w io.Writer, set armor.Set) {
	fmt.Fprintf(w, "%s (tier %d)\n", color.New(color.Bold).Sprint(set.Name), set.Tier)
	fmt.Fprintf(w, "  %s\n", set.Description)
	fmt.Fprintf(w, "  Power multiplier: ×%.2f\n", set.PowerMultiplier)
	fmt.Fprintf(w, "  Colors: %s / %s / %s\n", set.Primary, set.Secondary, set.Accent)

	features := armor.Features(set.Tier)
	if len(features) > 0 {
		names := make([]string, len(features))
		for i, f := range features {
			names[i] = f.Name
		}
		fmt.Fprintf(w, "  Gear: %s\n", strings.Join(names, ", "))
	}
	if next, ok := armor.NextFeature(set.Tier); ok {
		fmt.Fprintf(w, "  Next: %s at tier %d\n", next.Name, next.MinTier)
	}
}

func renderCatalog(w io.Writer, sets []armor.Set) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tNAME\tMULT\tPRIMARY")
	for _, set := range sets {
		fmt.Fprintf(tw, "%d\t%s\t×%.2f\t%s\n", set.Tier, set.Name, set.PowerMultiplier, set.Primary)
	}
	tw.Flush()
}

func renderChronicle(w io.Writer, history []string) {
	if len(history) == 0 {
		fmt.Fprintln(w, "The chronicle is still blank. A page is found every 4 steps.")
		return
	}
	for i, fragment := range history {
		fmt.Fprintf(w, "%s %s\n\n", color.New(color.FgCyan).Sprintf("%d.", i+1), fragment)
	}
}

func renderWeek(w io.Writer, recap services.WeeklyRecap) {
	fmt.Fprintf(w, "%s (%s - %s)\n", color.New(color.Bold).Sprintf("Week %d", recap.WeekNumber), recap.StartDate, recap.EndDate)
	fmt.Fprintf(w, "  Quests finished: %d · %d steps\n", len(recap.Completed), recap.Steps)
	for _, task := range recap.Completed {
		fmt.Fprintf(w, "  %s %s (%s)\n", okMark(), task.Title, task.LastCompletedDate)
	}
	if recap.Insights != "" {
		fmt.Fprintf(w, "\n%s\n", recap.Insights)
	}
}
