package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
)

var errSaveFailed = errors.New("disk full")

type memoryStore struct {
	mu        sync.Mutex
	tasks     []database.Task
	state     *database.GameState
	saves     int
	failSaves bool
}

func (m *memoryStore) LoadTasks(ctx context.Context) ([]database.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.Task(nil), m.tasks...), nil
}

func (m *memoryStore) LoadState(ctx context.Context) (database.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return database.NewGameState(""), nil
	}
	return m.state.Clone(), nil
}

func (m *memoryStore) SaveTasks(ctx context.Context, tasks []database.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaves {
		return errSaveFailed
	}
	m.tasks = append([]database.Task(nil), tasks...)
	m.saves++
	return nil
}

func (m *memoryStore) SaveState(ctx context.Context, state database.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaves {
		return errSaveFailed
	}
	s := state.Clone()
	m.state = &s
	m.saves++
	return nil
}

func (m *memoryStore) SaveAll(ctx context.Context, tasks []database.Task, state database.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaves {
		return errSaveFailed
	}
	m.tasks = append([]database.Task(nil), tasks...)
	s := state.Clone()
	m.state = &s
	m.saves++
	return nil
}

func (m *memoryStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memoryStore) persistedState() database.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return database.NewGameState("")
	}
	return m.state.Clone()
}

// scriptedNarrator numbers its story fragments. When gate is set, story
// requests signal started and then wait for gate to close.
type scriptedNarrator struct {
	mu          sync.Mutex
	storyCalls  int
	flavorCalls int
	lastLevel   int
	lastRemain  int
	lastHistory []string
	started     chan struct{}
	gate        chan struct{}
}

func (n *scriptedNarrator) StoryFragment(ctx context.Context, history []string, level int) string {
	n.mu.Lock()
	n.storyCalls++
	call := n.storyCalls
	n.lastLevel = level
	n.lastHistory = append([]string(nil), history...)
	started, gate := n.started, n.gate
	n.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	return fmt.Sprintf("fragment %d", call)
}

func (n *scriptedNarrator) FlavorText(ctx context.Context, set armor.Set, power float64, tasksRemaining int) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.flavorCalls++
	n.lastRemain = tasksRemaining
	return fmt.Sprintf("%s stands ready", set.Name)
}

func (n *scriptedNarrator) stories() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.storyCalls
}

var testDay = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestGame(t *testing.T, store *memoryStore) (*GameService, *scriptedNarrator) {
	t.Helper()
	narrator := &scriptedNarrator{}
	g := NewGameService(store, narrator, time.UTC)
	g.SetClock(func() time.Time { return testDay })
	if err := g.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return g, narrator
}

func mustAdd(t *testing.T, g *GameService, title string, freq database.Frequency, steps int) database.Task {
	t.Helper()
	task, err := g.AddTask(context.Background(), title, freq, steps)
	if err != nil {
		t.Fatalf("AddTask(%q): %v", title, err)
	}
	return task
}

func mustToggle(t *testing.T, g *GameService, id string) *ToggleResult {
	t.Helper()
	res, err := g.ToggleTask(context.Background(), id)
	if err != nil {
		t.Fatalf("ToggleTask(%s): %v", id, err)
	}
	return res
}
