package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/utils"
)

var ErrEmptyTitle = errors.New("quest title is required")

// Store persists the two game blobs. SaveAll writes both atomically.
type Store interface {
	LoadTasks(ctx context.Context) ([]database.Task, error)
	LoadState(ctx context.Context) (database.GameState, error)
	SaveTasks(ctx context.Context, tasks []database.Task) error
	SaveState(ctx context.Context, state database.GameState) error
	SaveAll(ctx context.Context, tasks []database.Task, state database.GameState) error
}

// Narrator supplies flavor lines and story fragments, falling back to fixed
// text on failure.
type Narrator interface {
	StoryTeller
	FlavorText(ctx context.Context, set armor.Set, power float64, tasksRemaining int) string
}

// StoryOutcome describes what happened on the story track during a toggle.
type StoryOutcome struct {
	Due        bool
	Fired      bool
	Suppressed bool
	Fragment   string
}

// ToggleResult is returned by ToggleTask. Found is false for unknown ids,
// in which case nothing changed.
type ToggleResult struct {
	Found     bool
	Task      database.Task
	Completed bool
	Progress  *Progress
	Reward    *RewardEvent
	Story     StoryOutcome
}

// GameService owns the quest list and the game state. Every mutation runs
// under one mutex and is persisted before it becomes visible.
type GameService struct {
	mu       sync.Mutex
	store    Store
	narrator Narrator
	story    *StoryTracker
	loc      *time.Location
	now      func() time.Time

	tasks *TaskList
	state database.GameState
}

func NewGameService(store Store, narrator Narrator, loc *time.Location) *GameService {
	if loc == nil {
		loc = time.Local
	}
	return &GameService{
		store:    store,
		narrator: narrator,
		story:    NewStoryTracker(narrator),
		loc:      loc,
		now:      time.Now,
		tasks:    NewTaskList(nil),
		state:    database.NewGameState(""),
	}
}

// SetClock replaces the time source.
func (g *GameService) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

func (g *GameService) today() string {
	return utils.DateString(g.now(), g.loc)
}

// Today returns the current date string in the tracker's time zone.
func (g *GameService) Today() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.today()
}

// Load reads both blobs and un-completes daily quests not done today.
func (g *GameService) Load(ctx context.Context) error {
	tasks, err := g.store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load quests: %w", err)
	}
	state, err := g.store.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load game state: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.tasks = NewTaskList(tasks)
	g.state = normalizeState(state)

	n := g.tasks.ResetDaily(g.today())
	if err := g.store.SaveTasks(ctx, g.tasks.Tasks()); err != nil {
		return fmt.Errorf("save quests: %w", err)
	}

	log.Printf("📜 Loaded %d quests, %s at level %d (%d steps), %d daily quests reset",
		g.tasks.Len(), g.state.KnightName, g.state.Level, g.state.CompletedTaskCount, n)
	return nil
}

func normalizeState(s database.GameState) database.GameState {
	s = s.Clone()
	if s.CompletedTaskCount < 0 {
		s.CompletedTaskCount = 0
	}
	if s.TotalPower < 0 {
		s.TotalPower = 0
	}
	if s.LastStoryStep < 0 {
		s.LastStoryStep = 0
	}
	s.Level = LevelForCount(s.CompletedTaskCount)
	return s
}

// ResetDaily re-applies the daily reset, e.g. at midnight.
func (g *GameService) ResetDaily(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.tasks.Clone()
	n := next.ResetDaily(g.today())
	if n == 0 {
		return 0, nil
	}
	if err := g.store.SaveTasks(ctx, next.Tasks()); err != nil {
		return 0, fmt.Errorf("save quests: %w", err)
	}
	g.tasks = next
	return n, nil
}

// AddTask enlists a new quest at the top of the list.
func (g *GameService) AddTask(ctx context.Context, title string, freq database.Frequency, steps int) (database.Task, error) {
	if strings.TrimSpace(title) == "" {
		return database.Task{}, ErrEmptyTitle
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.tasks.Clone()
	task := next.Add(title, freq, steps, g.now())
	if err := g.store.SaveTasks(ctx, next.Tasks()); err != nil {
		return database.Task{}, fmt.Errorf("save quests: %w", err)
	}
	g.tasks = next
	return task, nil
}

// DeleteTask removes a quest. Unknown ids are a no-op.
func (g *GameService) DeleteTask(ctx context.Context, id string) (database.Task, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.tasks.Clone()
	task, found := next.Delete(id)
	if !found {
		return database.Task{}, false, nil
	}
	if err := g.store.SaveTasks(ctx, next.Tasks()); err != nil {
		return database.Task{}, false, fmt.Errorf("save quests: %w", err)
	}
	g.tasks = next
	return task, true, nil
}

// ToggleTask flips a quest. Completing it advances the knight and may open a
// chest or fetch a story fragment; un-completing it changes nothing but the
// quest itself.
func (g *GameService) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	g.mu.Lock()

	next := g.tasks.Clone()
	task, nowCompleted, found := next.Toggle(id, g.today())
	if !found {
		g.mu.Unlock()
		return &ToggleResult{}, nil
	}
	res := &ToggleResult{Found: true, Task: task, Completed: nowCompleted}

	if !nowCompleted {
		defer g.mu.Unlock()
		if err := g.store.SaveTasks(ctx, next.Tasks()); err != nil {
			return nil, fmt.Errorf("save quests: %w", err)
		}
		g.tasks = next
		return res, nil
	}

	state, progress := Advance(g.state, task.Steps, armor.ForLevel(g.state.Level))
	if err := g.store.SaveAll(ctx, next.Tasks(), state); err != nil {
		g.mu.Unlock()
		return nil, fmt.Errorf("save progress: %w", err)
	}
	g.tasks = next
	g.state = state

	res.Progress = &progress
	if progress.LeveledUp {
		res.Reward = &RewardEvent{Level: state.Level, Armor: armor.ForLevel(state.Level)}
		log.Printf("🎁 %s reached level %d: %s", state.KnightName, state.Level, res.Reward.Armor.Name)
	}

	due := StoryDue(state.CompletedTaskCount, state.LastStoryStep)
	history := state.Clone().StoryHistory
	level := state.Level
	reached := state.CompletedTaskCount
	g.mu.Unlock()

	if !due {
		return res, nil
	}
	res.Story.Due = true

	fragment, fired, err := g.story.Request(ctx, history, level, func(fragment string) error {
		return g.recordStory(ctx, fragment, reached)
	})
	if !fired {
		res.Story.Suppressed = true
		log.Printf("⏳ Story request at step %d skipped, another one is in flight", reached)
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record story: %w", err)
	}
	res.Story.Fired = true
	res.Story.Fragment = fragment
	return res, nil
}

func (g *GameService) recordStory(ctx context.Context, fragment string, reached int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.state.Clone()
	state.StoryHistory = append(state.StoryHistory, fragment)
	state.LastStoryStep = reached
	if err := g.store.SaveState(ctx, state); err != nil {
		return err
	}
	g.state = state
	return nil
}

// FlavorText asks the narrator for a line about the knight's current state.
func (g *GameService) FlavorText(ctx context.Context) string {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	return g.narrator.FlavorText(ctx, armor.ForLevel(state.Level), state.TotalPower, StepsToNextChest(state.CompletedTaskCount))
}

func (g *GameService) Tasks() []database.Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tasks.Tasks()
}

func (g *GameService) State() database.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// Armor returns the armor currently worn.
func (g *GameService) Armor() armor.Set {
	g.mu.Lock()
	defer g.mu.Unlock()
	return armor.ForLevel(g.state.Level)
}

// Resolve maps a user reference (id, id prefix or list position) to a quest id.
func (g *GameService) Resolve(ref string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tasks.Resolve(ref)
}

// StoryBusy reports whether a story fragment is being fetched.
func (g *GameService) StoryBusy() bool {
	return g.story.Busy()
}
