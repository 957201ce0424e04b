package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"knight-quest/internal/database"
	"knight-quest/internal/utils"
)

// NotificationSender delivers HTML-formatted messages to the player.
type NotificationSender interface {
	SendMessage(text string) error
}

// HeraldService pushes unsolicited messages: the morning briefing, daily
// resets, rewards and story fragments.
type HeraldService struct {
	sender NotificationSender
	game   *GameService
	stats  *StatsService
}

func NewHeraldService(sender NotificationSender, game *GameService, stats *StatsService) *HeraldService {
	return &HeraldService{
		sender: sender,
		game:   game,
		stats:  stats,
	}
}

// SendMorningBriefing lists the open quests together with a fresh flavor line.
func (hs *HeraldService) SendMorningBriefing(ctx context.Context) {
	o := hs.stats.Overview()

	var message strings.Builder
	message.WriteString(fmt.Sprintf("🌅 <b>Morning, %s</b>\n\n", html.EscapeString(o.KnightName)))
	message.WriteString(fmt.Sprintf("<i>%s</i>\n\n", html.EscapeString(hs.game.FlavorText(ctx))))

	open := 0
	for _, task := range hs.game.Tasks() {
		if task.Completed {
			continue
		}
		open++
		message.WriteString(fmt.Sprintf("%s %s (%d steps)\n",
			utils.GetFrequencyEmoji(string(task.Frequency)), html.EscapeString(task.Title), task.Steps))
	}
	if open == 0 {
		message.WriteString("📭 No open quests. Speak to the town clerk with /add\n")
	}
	message.WriteString(fmt.Sprintf("\n🗺 %d steps to the next chest", o.StepsToChest))

	if err := hs.sender.SendMessage(message.String()); err != nil {
		log.Printf("❌ Briefing not sent: %v", err)
	}
}

// ResetDaily runs the daily reset and announces it when anything changed.
func (hs *HeraldService) ResetDaily(ctx context.Context) {
	n, err := hs.game.ResetDaily(ctx)
	if err != nil {
		log.Printf("⚠️ Daily reset failed: %v", err)
		return
	}
	log.Printf("🔄 Daily reset: %d quests reopened", n)
	if n == 0 || hs.sender == nil {
		return
	}
	if err := hs.sender.SendMessage(fmt.Sprintf("🔄 A new day dawns. %d daily quests await.", n)); err != nil {
		log.Printf("❌ Reset notice not sent: %v", err)
	}
}

// SendReward announces an opened chest, followed by a flavor line for the new armor.
func (hs *HeraldService) SendReward(ctx context.Context, ev RewardEvent) {
	message := fmt.Sprintf(
		"🎁 <b>CHEST OPENED!</b>\n\n"+
			"Level %d reached.\n"+
			"New armor: <b>%s</b>\n"+
			"<i>%s</i>\n"+
			"Power multiplier ×%.2f\n\n"+
			"<i>%s</i>",
		ev.Level,
		html.EscapeString(ev.Armor.Name),
		html.EscapeString(ev.Armor.Description),
		ev.Armor.PowerMultiplier,
		html.EscapeString(hs.game.FlavorText(ctx)),
	)
	if err := hs.sender.SendMessage(message); err != nil {
		log.Printf("❌ Reward not sent: %v", err)
	}
}

// SendStory delivers a freshly written lore fragment.
func (hs *HeraldService) SendStory(fragment string) {
	message := fmt.Sprintf("📜 <b>A page is found...</b>\n\n<i>%s</i>", html.EscapeString(fragment))
	if err := hs.sender.SendMessage(message); err != nil {
		log.Printf("❌ Story not sent: %v", err)
	}
}

// FormatTask renders one quest line for list views.
func FormatTask(position int, task database.Task) string {
	status := "⬜"
	if task.Completed {
		status = "✅"
	}
	return fmt.Sprintf("%d. %s %s %s · %d steps",
		position, status, utils.GetFrequencyEmoji(string(task.Frequency)), html.EscapeString(task.Title), task.Steps)
}
