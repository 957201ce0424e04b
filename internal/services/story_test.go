package services

import (
	"context"
	"testing"
	"time"
)

func TestStoryDue(t *testing.T) {
	cases := []struct {
		newTotal, last int
		want           bool
	}{
		{3, 0, false},
		{4, 0, true},
		{4, 3, true},
		{7, 4, false},
		{8, 4, true},
		{8, 7, true},
		{11, 8, false},
		{20, 4, true},
	}
	for _, tc := range cases {
		if got := StoryDue(tc.newTotal, tc.last); got != tc.want {
			t.Fatalf("StoryDue(%d, %d)=%v, want %v", tc.newTotal, tc.last, got, tc.want)
		}
	}
}

func TestStoryTrackerSuppressesWhileInFlight(t *testing.T) {
	n := &scriptedNarrator{started: make(chan struct{}), gate: make(chan struct{})}
	tracker := NewStoryTracker(n)
	ctx := context.Background()

	type outcome struct {
		fragment string
		ok       bool
	}
	first := make(chan outcome, 1)
	var recorded []string
	go func() {
		f, ok, _ := tracker.Request(ctx, nil, 0, func(f string) error {
			recorded = append(recorded, f)
			return nil
		})
		first <- outcome{f, ok}
	}()

	select {
	case <-n.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first request never reached the narrator")
	}
	if !tracker.Busy() {
		t.Fatalf("tracker should be busy while a request is outstanding")
	}

	if _, ok, err := tracker.Request(ctx, nil, 0, nil); ok || err != nil {
		t.Fatalf("second request ok=%v err=%v, want suppressed", ok, err)
	}

	close(n.gate)
	got := <-first
	if !got.ok || got.fragment != "fragment 1" {
		t.Fatalf("first request=%+v", got)
	}
	if len(recorded) != 1 || recorded[0] != "fragment 1" {
		t.Fatalf("recorded=%v", recorded)
	}
	if tracker.Busy() {
		t.Fatalf("tracker still busy after completion")
	}
	if n.stories() != 1 {
		t.Fatalf("narrator called %d times, want 1", n.stories())
	}

	n.mu.Lock()
	n.gate = nil
	n.mu.Unlock()
	if f, ok, _ := tracker.Request(ctx, []string{"fragment 1"}, 0, nil); !ok || f != "fragment 2" {
		t.Fatalf("request after release=%q ok=%v", f, ok)
	}
}
