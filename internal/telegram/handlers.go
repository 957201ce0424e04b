package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handlers.go - Telegram command handlers

const helpText = `⚔️ <b>Knight Quest</b>

<b>Quests:</b>
/quests - Quest board with buttons
/add [once|daily|weekly] [steps] [title] - Enlist a quest
Example: /add daily 2 Feed the horse
/done [n|id] - Complete or reopen a quest
/delete [n|id] - Abandon a quest

<b>The knight:</b>
/knight - Level, power and the road to the next chest
/armor [tier] - Inspect armor, yours or any tier 0-99
/chronicle - The story so far
/week - This week's deeds

Quests may be named by their number on the board or by the start of their id.`

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	o := b.services.Stats.Overview()
	b.SendMessageOrLogError(fmt.Sprintf("🏰 <b>Welcome, %s!</b>\n\n%s", escape(o.KnightName), helpText))
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	b.SendMessageOrLogError(helpText)
}

func (b *Bot) handleQuests(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.sendQuestBoard(); err != nil {
		log.Printf("❌ Quest board not sent: %v", err)
	}
}

var errAddUsage = errors.New("format: /add [once|daily|weekly] [steps] [title]")

// parseAddArgs reads "<frequency> <steps> <title>". Frequency and steps are
// optional and default to once and 1.
func parseAddArgs(args string) (database.Frequency, int, string, error) {
	fields := strings.Fields(args)
	freq := database.Once
	steps := 1

	if len(fields) > 0 {
		if f := database.Frequency(strings.ToLower(fields[0])); f.IsValid() {
			freq = f
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			steps = services.ClampSteps(n)
			fields = fields[1:]
		}
	}

	title := strings.Join(fields, " ")
	if title == "" {
		return "", 0, "", errAddUsage
	}
	return freq, steps, title, nil
}

func (b *Bot) handleAddTask(ctx context.Context, msg *tgbotapi.Message) {
	freq, steps, title, err := parseAddArgs(msg.CommandArguments())
	if err != nil {
		b.SendMessageOrLogError("❌ " + escape(errAddUsage.Error()))
		return
	}

	task, err := b.services.Game.AddTask(ctx, title, freq, steps)
	if err != nil {
		log.Printf("❌ Add quest failed: %v", err)
		b.SendMessageOrLogError("❌ The quest could not be recorded")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"📜 Quest enlisted:\n%s <b>%s</b>\n%s · %d steps",
		frequencyEmoji(task.Frequency),
		escape(task.Title),
		frequencyName(task.Frequency),
		task.Steps,
	))
}

// resolveArg maps a command argument to a quest id, replying when it cannot.
func (b *Bot) resolveArg(msg *tgbotapi.Message, usage string) (string, bool) {
	ref := strings.TrimSpace(msg.CommandArguments())
	if ref == "" {
		b.SendMessageOrLogError("❌ Format: " + usage)
		return "", false
	}
	id, ok := b.services.Game.Resolve(ref)
	if !ok {
		b.SendMessageOrLogError(fmt.Sprintf("❓ No quest matches %q. See /quests", ref))
		return "", false
	}
	return id, true
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) {
	id, ok := b.resolveArg(msg, "/done [n|id]")
	if !ok {
		return
	}
	b.toggleQuest(ctx, id)
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) {
	id, ok := b.resolveArg(msg, "/delete [n|id]")
	if !ok {
		return
	}
	b.deleteQuest(ctx, id)
}

func (b *Bot) handleKnight(ctx context.Context, msg *tgbotapi.Message) {
	o := b.services.Stats.Overview()
	flavor := b.services.Game.FlavorText(ctx)
	b.SendMessageOrLogError(formatKnight(o, flavor))
}

func (b *Bot) handleArmor(ctx context.Context, msg *tgbotapi.Message) {
	tier := b.services.Game.State().Level
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			b.SendMessageOrLogError(fmt.Sprintf("❌ Tier must be a number from 0 to %d", armor.MaxTier))
			return
		}
		tier = n
	}
	b.SendMessageOrLogError(formatArmor(armor.ForLevel(tier)))
}

func (b *Bot) handleChronicle(ctx context.Context, msg *tgbotapi.Message) {
	state := b.services.Game.State()
	b.SendMessageOrLogError(formatChronicle(state.StoryHistory, b.services.Game.StoryBusy()))
}

func (b *Bot) handleWeek(ctx context.Context, msg *tgbotapi.Message) {
	recap := b.services.Stats.Weekly(time.Now())
	b.SendMessageOrLogError(formatWeek(recap))
}
