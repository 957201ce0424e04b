package app

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"knight-quest/internal/config"
	"knight-quest/internal/database"
	"knight-quest/internal/narration"
	"knight-quest/internal/services"
	"knight-quest/internal/telegram"
	"knight-quest/internal/utils"

	"github.com/google/generative-ai-go/genai"
	"github.com/robfig/cron/v3"
)

// Core is the game without any chat surface: storage, narration and services.
// The CLI uses it directly; Application adds the bot and the scheduler.
type Core struct {
	Config   *config.Config
	DB       *database.Database
	Repo     *database.Repository
	Services *services.ServiceManager
	Location *time.Location

	gemini *genai.Client
}

// NewCore opens the database, picks a narrator and loads the saved game.
func NewCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	core := &Core{
		Config:   cfg,
		DB:       db,
		Repo:     database.NewRepository(db, cfg.Game.KnightName),
		Location: utils.LoadLocation(cfg.Game.Timezone),
	}

	narrator, err := core.newNarrator(ctx)
	if err != nil {
		core.Close()
		return nil, err
	}

	core.Services = services.NewServiceManager(core.Repo, narrator, core.Location)
	if err := core.Services.Game.Load(ctx); err != nil {
		core.Close()
		return nil, err
	}
	return core, nil
}

func (c *Core) newNarrator(ctx context.Context) (*narration.Client, error) {
	if c.Config.Narration.APIKey == "" {
		log.Println("📴 GEMINI_API_KEY not set, narration runs offline")
		return narration.Offline(), nil
	}

	client, err := narration.NewGeminiClient(ctx, c.Config.Narration.APIKey)
	if err != nil {
		return nil, err
	}
	c.gemini = client

	storyModel := c.Config.Narration.StoryModel
	if storyModel == "" {
		storyModel = narration.DefaultStoryModel
	}
	log.Printf("🔮 Narration via Gemini: flavor=%s story=%s", c.Config.Narration.FlavorModel, storyModel)

	return narration.NewClient(
		narration.NewGeminiGenerator(client, c.Config.Narration.FlavorModel),
		narration.NewGeminiGenerator(client, storyModel),
		c.Config.Narration.Timeout,
	), nil
}

func (c *Core) Close() {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			log.Printf("⚠️ Gemini client close failed: %v", err)
		}
	}
	if err := c.DB.Close(); err != nil {
		log.Printf("⚠️ Database close failed: %v", err)
	}
}

type Application struct {
	core       *Core
	bot        *telegram.Bot
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	core, err := NewCore(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, core.Services)
	if err != nil {
		cancel()
		core.Close()
		return nil, err
	}
	core.Services.SetNotificationSender(bot)

	app := &Application{
		core:       core,
		bot:        bot,
		cron:       cron.New(cron.WithLocation(core.Location)),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	if err := app.setupCronJobs(); err != nil {
		cancel()
		core.Close()
		return nil, err
	}

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Starting Knight Quest...")

	go a.bot.Start(a.ctx)
	a.cron.Start()

	a.sendWelcomeMessage()

	log.Printf("✅ Knight Quest running. Bot: @%s", a.bot.GetUsername())
	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Stopping Knight Quest...")

	a.cancelFunc()
	<-a.cron.Stop().Done()
	a.core.Close()

	log.Println("✅ Knight Quest stopped")
	return nil
}

func (a *Application) setupCronJobs() error {
	schedule := a.core.Config.Schedule
	herald := a.core.Services.Herald

	// Daily quests reopen when the day turns over
	if _, err := a.cron.AddFunc(schedule.Reset, func() {
		herald.ResetDaily(a.ctx)
	}); err != nil {
		return fmt.Errorf("schedule daily reset %q: %w", schedule.Reset, err)
	}

	// Morning briefing with the open quests
	if _, err := a.cron.AddFunc(schedule.Briefing, func() {
		herald.SendMorningBriefing(a.ctx)
	}); err != nil {
		return fmt.Errorf("schedule briefing %q: %w", schedule.Briefing, err)
	}

	return nil
}

func (a *Application) sendWelcomeMessage() {
	o := a.core.Services.Stats.Overview()
	message := fmt.Sprintf(`⚔️ <b>Knight Quest</b>

%s stands ready at level %d in %s.

Today: %s
%s

/quests - quest board
/knight - your knight
/help - all commands`,
		html.EscapeString(o.KnightName), o.Level, o.Armor.Name,
		a.core.Services.Game.Today(),
		utils.GetTimezoneInfo(time.Now(), a.core.Location),
	)

	a.bot.SendMessageOrLogError(message)
}
