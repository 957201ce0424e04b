package services

import (
	"testing"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
)

func TestAdvanceCleanArmorScenario(t *testing.T) {
	state := database.NewGameState("")

	next, p := Advance(state, 10, armor.ForLevel(0))
	if next.CompletedTaskCount != 10 || next.Level != 1 {
		t.Fatalf("count=%d level=%d, want 10 and 1", next.CompletedTaskCount, next.Level)
	}
	if next.TotalPower != 210 {
		t.Fatalf("power=%v, want 210", next.TotalPower)
	}
	if !p.LeveledUp {
		t.Fatalf("expected level up")
	}
	if state.CompletedTaskCount != 0 {
		t.Fatalf("Advance mutated its input")
	}
}

func TestAdvanceLaw(t *testing.T) {
	cases := []struct {
		count, level int
		power        float64
		steps        int
	}{
		{0, 0, 10, 1},
		{9, 0, 30, 1},
		{17, 1, 400, 5},
		{42, 4, 1234.5, 30},
		{500, 50, 1e6, 100},
	}
	for _, tc := range cases {
		state := database.GameState{CompletedTaskCount: tc.count, Level: tc.level, TotalPower: tc.power}
		worn := armor.ForLevel(tc.level)

		next, p := Advance(state, tc.steps, worn)

		wantCount := tc.count + tc.steps
		wantLevel := wantCount / 10
		if wantLevel > 99 {
			wantLevel = 99
		}
		wantPower := tc.power + 20*worn.PowerMultiplier*float64(tc.steps)

		if next.CompletedTaskCount != wantCount || next.Level != wantLevel || next.TotalPower != wantPower {
			t.Fatalf("Advance(%+v, %d)=%+v, want count=%d level=%d power=%v", state, tc.steps, next, wantCount, wantLevel, wantPower)
		}
		if p.LeveledUp != (wantCount/10 > tc.level) {
			t.Fatalf("Advance(%+v, %d) leveledUp=%v", state, tc.steps, p.LeveledUp)
		}
		if p.PowerAfter < p.PowerBefore || p.CountAfter < p.CountBefore {
			t.Fatalf("progress went backwards: %+v", p)
		}
	}
}

func TestAdvanceStopsAtFinalTier(t *testing.T) {
	state := database.GameState{CompletedTaskCount: 985, Level: 98, TotalPower: 5000}

	next, p := Advance(state, 10, armor.ForLevel(98))
	if next.Level != 99 || !p.LeveledUp {
		t.Fatalf("reaching tier 99: level=%d leveledUp=%v", next.Level, p.LeveledUp)
	}

	after, p2 := Advance(next, 10, armor.ForLevel(99))
	if after.Level != 99 {
		t.Fatalf("level=%d, want capped at 99", after.Level)
	}
	if p2.LeveledUp {
		t.Fatalf("level up fired past the final tier")
	}
	if after.CompletedTaskCount != 1005 {
		t.Fatalf("count=%d, want 1005", after.CompletedTaskCount)
	}

	again, p3 := Advance(after, 50, armor.ForLevel(99))
	if p3.LeveledUp || again.Level != 99 {
		t.Fatalf("level up fired again at count %d", again.CompletedTaskCount)
	}
}

func TestChestHelpers(t *testing.T) {
	cases := []struct {
		count, level, tile, toChest int
	}{
		{0, 0, 0, 10},
		{3, 0, 3, 7},
		{10, 1, 0, 10},
		{19, 1, 9, 1},
		{2000, 99, 0, 10},
	}
	for _, tc := range cases {
		if got := LevelForCount(tc.count); got != tc.level {
			t.Fatalf("LevelForCount(%d)=%d, want %d", tc.count, got, tc.level)
		}
		if got := Tile(tc.count); got != tc.tile {
			t.Fatalf("Tile(%d)=%d, want %d", tc.count, got, tc.tile)
		}
		if got := StepsToNextChest(tc.count); got != tc.toChest {
			t.Fatalf("StepsToNextChest(%d)=%d, want %d", tc.count, got, tc.toChest)
		}
	}
	if got := PowerCeiling(0); got != 200 {
		t.Fatalf("PowerCeiling(0)=%v", got)
	}
}
