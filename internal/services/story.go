package services

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// StoryStepInterval is the number of cumulative steps between lore fragments.
const StoryStepInterval = 4

// StoryDue reports whether reaching newTotal crosses a story boundary since lastStoryStep.
func StoryDue(newTotal, lastStoryStep int) bool {
	return newTotal/StoryStepInterval > lastStoryStep/StoryStepInterval
}

// StoryTeller fetches the next lore fragment. It never fails; a fallback
// fragment is indistinguishable from a generated one.
type StoryTeller interface {
	StoryFragment(ctx context.Context, history []string, level int) string
}

// StoryTracker allows at most one story request in flight. Requests made
// while one is outstanding are dropped, not queued.
type StoryTracker struct {
	teller   StoryTeller
	slot     *semaphore.Weighted
	inFlight atomic.Bool
}

func NewStoryTracker(teller StoryTeller) *StoryTracker {
	return &StoryTracker{teller: teller, slot: semaphore.NewWeighted(1)}
}

// Request fetches a fragment and hands it to record while still holding the
// slot, so the next request always sees the recorded history. ok is false
// when the request was suppressed because another one is outstanding.
func (st *StoryTracker) Request(ctx context.Context, history []string, level int, record func(fragment string) error) (fragment string, ok bool, err error) {
	if !st.slot.TryAcquire(1) {
		return "", false, nil
	}
	st.inFlight.Store(true)
	defer func() {
		st.inFlight.Store(false)
		st.slot.Release(1)
	}()

	fragment = st.teller.StoryFragment(ctx, history, level)
	if record != nil {
		if err := record(fragment); err != nil {
			return fragment, true, err
		}
	}
	return fragment, true, nil
}

// Busy reports whether a request is currently outstanding.
func (st *StoryTracker) Busy() bool {
	return st.inFlight.Load()
}
