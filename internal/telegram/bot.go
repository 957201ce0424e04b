package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"knight-quest/internal/database"
	"knight-quest/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	toggleCallbackPrefix = "toggle_"
	deleteCallbackPrefix = "delete_"
)

type commandHandler func(ctx context.Context, msg *tgbotapi.Message)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	handlers map[string]commandHandler
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]commandHandler),
	}

	bot.registerHandlers()
	log.Printf("🤖 Bot ready: @%s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["start"] = b.handleStart
	b.handlers["help"] = b.handleHelp
	b.handlers["quests"] = b.handleQuests
	b.handlers["add"] = b.handleAddTask
	b.handlers["done"] = b.handleDone
	b.handlers["delete"] = b.handleDelete
	b.handlers["knight"] = b.handleKnight
	b.handlers["armor"] = b.handleArmor
	b.handlers["chronicle"] = b.handleChronicle
	b.handlers["week"] = b.handleWeek
}

// SendMessage sends an HTML message to the configured chat.
func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) sendQuestBoard() error {
	tasks := b.services.Game.Tasks()
	msg := tgbotapi.NewMessage(b.chatID, formatQuestBoard(tasks))
	msg.ParseMode = tgbotapi.ModeHTML
	if len(tasks) > 0 {
		msg.ReplyMarkup = questKeyboard(tasks)
	}
	_, err := b.bot.Send(msg)
	return err
}

// refreshQuestBoard redraws a quest board message in place after a button press.
func (b *Bot) refreshQuestBoard(messageID int) {
	tasks := b.services.Game.Tasks()
	var edit tgbotapi.EditMessageTextConfig
	if len(tasks) > 0 {
		edit = tgbotapi.NewEditMessageTextAndMarkup(b.chatID, messageID, formatQuestBoard(tasks), questKeyboard(tasks))
	} else {
		edit = tgbotapi.NewEditMessageText(b.chatID, messageID, formatQuestBoard(tasks))
	}
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.bot.Send(edit); err != nil {
		log.Printf("⚠️ Quest board %d not refreshed: %v", messageID, err)
	}
}

func questKeyboard(tasks []database.Task) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks))
	for i, task := range tasks {
		label := fmt.Sprintf("⬜ %d. %s", i+1, truncate(task.Title, 28))
		if task.Completed {
			label = fmt.Sprintf("✅ %d. %s", i+1, truncate(task.Title, 28))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, toggleCallbackPrefix+task.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑", deleteCallbackPrefix+task.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

// Start polls for updates until ctx is cancelled. Each update is handled on
// its own goroutine so a slow story request never stalls the chat.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		denied := tgbotapi.NewMessage(update.Message.Chat.ID, "⛔ This knight serves another lord")
		if _, err := b.bot.Send(denied); err != nil {
			log.Printf("⚠️ Denial not sent to chat %d: %v", update.Message.Chat.ID, err)
		}
		return
	}

	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}
	handler, exists := b.handlers[msg.Command()]
	if !exists {
		b.SendMessageOrLogError("❌ Unknown command. Try /help")
		return
	}
	handler(ctx, msg)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			log.Printf("⚠️ Callback answer failed: %v", err)
		}
	}()

	if callback.Message == nil || callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	log.Printf("Received callback: %s", data)

	switch {
	case strings.HasPrefix(data, toggleCallbackPrefix):
		b.toggleQuest(ctx, strings.TrimPrefix(data, toggleCallbackPrefix))
		b.refreshQuestBoard(callback.Message.MessageID)
	case strings.HasPrefix(data, deleteCallbackPrefix):
		b.deleteQuest(ctx, strings.TrimPrefix(data, deleteCallbackPrefix))
		b.refreshQuestBoard(callback.Message.MessageID)
	}
}

// toggleQuest flips a quest and announces whatever the completion earned.
func (b *Bot) toggleQuest(ctx context.Context, id string) {
	res, err := b.services.Game.ToggleTask(ctx, id)
	if err != nil {
		log.Printf("❌ Toggle %s failed: %v", id, err)
		b.SendMessageOrLogError("❌ The scribe could not record that. Try again.")
		return
	}
	if !res.Found {
		b.SendMessageOrLogError("❓ No such quest")
		return
	}

	b.SendMessageOrLogError(formatToggle(res))

	if res.Reward != nil {
		b.services.Herald.SendReward(ctx, *res.Reward)
	}
	if res.Story.Fired {
		b.services.Herald.SendStory(res.Story.Fragment)
	}
}

func (b *Bot) deleteQuest(ctx context.Context, id string) {
	task, found, err := b.services.Game.DeleteTask(ctx, id)
	if err != nil {
		log.Printf("❌ Delete %s failed: %v", id, err)
		b.SendMessageOrLogError("❌ The scribe could not strike that quest. Try again.")
		return
	}
	if !found {
		b.SendMessageOrLogError("❓ No such quest")
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("🗑 Quest abandoned: %s", escape(task.Title)))
}
