package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Blob keys. The names match the original browser storage keys so exported
// blobs can be moved between the two.
const (
	TasksKey = "knight_quest_tasks_v3"
	StateKey = "knight_quest_state_v3"

	corruptSuffix = ".corrupt"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Repository struct {
	Db         *Database
	knightName string
}

func NewRepository(db *Database, knightName string) *Repository {
	return &Repository{Db: db, knightName: knightName}
}

// LoadTasks returns the persisted quest list, or an empty list when none is stored.
func (r *Repository) LoadTasks(ctx context.Context) ([]Task, error) {
	tasks := []Task{}
	found, err := r.loadBlob(ctx, TasksKey, &tasks)
	if err != nil {
		return nil, err
	}
	if !found || tasks == nil {
		return []Task{}, nil
	}
	return tasks, nil
}

// LoadState returns the persisted game state, or a fresh one when none is stored.
func (r *Repository) LoadState(ctx context.Context) (GameState, error) {
	var state GameState
	found, err := r.loadBlob(ctx, StateKey, &state)
	if err != nil {
		return GameState{}, err
	}
	if !found {
		return NewGameState(r.knightName), nil
	}
	if state.StoryHistory == nil {
		state.StoryHistory = []string{}
	}
	if state.KnightName == "" {
		state.KnightName = NewGameState(r.knightName).KnightName
	}
	return state, nil
}

func (r *Repository) SaveTasks(ctx context.Context, tasks []Task) error {
	return putBlob(ctx, r.Db.db, TasksKey, tasks)
}

func (r *Repository) SaveState(ctx context.Context, state GameState) error {
	return putBlob(ctx, r.Db.db, StateKey, state)
}

// SaveAll writes both blobs in one transaction.
func (r *Repository) SaveAll(ctx context.Context, tasks []Task, state GameState) error {
	return r.Db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := putBlob(ctx, tx, TasksKey, tasks); err != nil {
			return err
		}
		return putBlob(ctx, tx, StateKey, state)
	})
}

// loadBlob decodes the blob stored under key into dst. A blob that does not
// decode is copied aside under key+".corrupt" and reported as absent.
func (r *Repository) loadBlob(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := r.Db.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("⚠️ Stored %s is not valid JSON, starting fresh: %v", key, err)
		if _, err := r.Db.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO blobs (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
		`, key+corruptSuffix, raw); err != nil {
			return false, fmt.Errorf("back up corrupt %s: %w", key, err)
		}
		return false, nil
	}
	return true, nil
}

func putBlob(ctx context.Context, ex execer, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT OR REPLACE INTO blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// RawBlob returns the stored JSON text for key, mainly for export and inspection.
func (r *Repository) RawBlob(ctx context.Context, key string) (string, bool, error) {
	var raw string
	err := r.Db.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, true, nil
}
