package telegram

import (
	"fmt"
	"html"
	"log"
	"strings"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/services"
	"knight-quest/internal/utils"
)

// chronicleLimit caps how many fragments /chronicle prints.
const chronicleLimit = 10

func (b *Bot) SendMessageOrLogError(message string) {
	if err := b.SendMessage(message); err != nil {
		log.Printf("❌ Message not sent: %v", err)
	}
}

func escape(s string) string {
	return html.EscapeString(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func frequencyEmoji(f database.Frequency) string {
	return utils.GetFrequencyEmoji(string(f))
}

func frequencyName(f database.Frequency) string {
	return utils.GetFrequencyName(string(f))
}

func formatQuestBoard(tasks []database.Task) string {
	if len(tasks) == 0 {
		return "📭 The quest board is empty. Enlist one with /add"
	}

	done := 0
	var message strings.Builder
	for i, task := range tasks {
		if task.Completed {
			done++
		}
		message.WriteString(services.FormatTask(i+1, task))
		message.WriteString("\n")
	}
	return fmt.Sprintf("🗺 <b>Quest board</b> (%d/%d cleared)\n\n%s", done, len(tasks), message.String())
}

func formatToggle(res *services.ToggleResult) string {
	if !res.Completed {
		return fmt.Sprintf("⬜ <b>%s</b> reopened. Glory already earned is kept.", escape(res.Task.Title))
	}

	p := res.Progress
	message := fmt.Sprintf(
		"✅ <b>%s</b> done!\n+%d steps · power %.0f → %.0f\n%s %d/%d to the next chest",
		escape(res.Task.Title),
		p.StepsAdded,
		p.PowerBefore,
		p.PowerAfter,
		utils.ProgressBar(services.Tile(p.CountAfter), services.StepsPerChest),
		services.Tile(p.CountAfter),
		services.StepsPerChest,
	)
	if res.Story.Suppressed {
		message += "\n⏳ The bard is still writing the last page."
	}
	return message
}

func formatKnight(o services.Overview, flavor string) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("🛡 <b>%s</b>\n", escape(o.KnightName)))
	message.WriteString(fmt.Sprintf("Level %d · %s\n\n", o.Level, escape(o.Armor.Name)))
	message.WriteString(fmt.Sprintf("⚡ Power: %.0f / %.0f\n", o.TotalPower, o.PowerCeiling))
	message.WriteString(fmt.Sprintf("👣 Steps: %d\n", o.CompletedSteps))
	message.WriteString(fmt.Sprintf("🗺 %s %d to the next chest\n", utils.ProgressBar(o.Tile, services.StepsPerChest), o.StepsToChest))
	message.WriteString(fmt.Sprintf("📋 Quests cleared: %d/%d\n", o.Cleared, o.Total))
	message.WriteString(fmt.Sprintf("📜 Pages in the chronicle: %d\n", o.StoriesTold))
	if o.NextFeature != nil {
		message.WriteString(fmt.Sprintf("🔒 Next unlock: %s at level %d\n", o.NextFeature.Name, o.NextFeature.MinTier))
	}
	message.WriteString(fmt.Sprintf("\n<i>%s</i>", escape(flavor)))
	return message.String()
}

func formatArmor(set armor.Set) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("🛡 <b>%s</b> (tier %d)\n", escape(set.Name), set.Tier))
	message.WriteString(fmt.Sprintf("<i>%s</i>\n\n", escape(set.Description)))
	message.WriteString(fmt.Sprintf("Power multiplier ×%.2f\n", set.PowerMultiplier))
	message.WriteString(fmt.Sprintf("Colors: %s / %s / %s\n", set.Primary, set.Secondary, set.Accent))

	features := armor.Features(set.Tier)
	if len(features) > 0 {
		names := make([]string, len(features))
		for i, f := range features {
			names[i] = f.Name
		}
		message.WriteString(fmt.Sprintf("Gear: %s\n", strings.Join(names, ", ")))
	}
	if next, ok := armor.NextFeature(set.Tier); ok {
		message.WriteString(fmt.Sprintf("Next: %s at tier %d\n", next.Name, next.MinTier))
	}
	return message.String()
}

func formatChronicle(history []string, busy bool) string {
	if len(history) == 0 {
		message := "📜 The chronicle is still blank. A page is found every 4 steps."
		if busy {
			message += "\n⏳ The first page is being written."
		}
		return message
	}

	start := 0
	if len(history) > chronicleLimit {
		start = len(history) - chronicleLimit
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📜 <b>The Chronicle</b> (%d pages)\n\n", len(history)))
	for i := start; i < len(history); i++ {
		message.WriteString(fmt.Sprintf("<b>%d.</b> <i>%s</i>\n\n", i+1, escape(history[i])))
	}
	if busy {
		message.WriteString("⏳ A new page is being written.")
	}
	return strings.TrimRight(message.String(), "\n")
}

func formatWeek(recap services.WeeklyRecap) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("📈 <b>Week %d</b>\n📅 %s - %s\n\n", recap.WeekNumber, recap.StartDate, recap.EndDate))
	message.WriteString(fmt.Sprintf("✅ Quests finished: %d · %d steps\n", len(recap.Completed), recap.Steps))

	for _, f := range []database.Frequency{database.Once, database.Daily, database.Weekly} {
		if n := recap.ByFrequency[f]; n > 0 {
			message.WriteString(fmt.Sprintf("%s %s: %d\n", frequencyEmoji(f), frequencyName(f), n))
		}
	}

	if recap.Insights != "" {
		message.WriteString(fmt.Sprintf("\n<b>💡 Insights:</b>\n%s", recap.Insights))
	}
	return message.String()
}
