package services

import (
	"knight-quest/internal/armor"
	"knight-quest/internal/database"
)

const (
	// StepsPerChest is the number of steps between level-ups (one chest per tile loop).
	StepsPerChest = 10

	// PowerPerStep is the base power granted per completed step, before the armor multiplier.
	PowerPerStep = 20.0
)

// Progress is the outcome of completing a quest.
type Progress struct {
	StepsAdded  int
	CountBefore int
	CountAfter  int
	LevelBefore int
	LevelAfter  int
	PowerBefore float64
	PowerAfter  float64
	LeveledUp   bool
}

// RewardEvent is raised when a completion opens a chest.
type RewardEvent struct {
	Level int
	Armor armor.Set
}

// LevelForCount returns min(count/10, 99).
func LevelForCount(count int) int {
	if count < 0 {
		return 0
	}
	level := count / StepsPerChest
	if level > armor.MaxTier {
		return armor.MaxTier
	}
	return level
}

// Advance applies a completion of steps to state using the armor worn before
// the completion. Power is never taken back; un-completing a quest does not
// call Advance.
func Advance(state database.GameState, steps int, worn armor.Set) (database.GameState, Progress) {
	next := state.Clone()

	newCount := state.CompletedTaskCount + steps
	rawLevel := newCount / StepsPerChest
	newPower := state.TotalPower + PowerPerStep*worn.PowerMultiplier*float64(steps)

	next.CompletedTaskCount = newCount
	next.Level = LevelForCount(newCount)
	next.TotalPower = newPower

	return next, Progress{
		StepsAdded:  steps,
		CountBefore: state.CompletedTaskCount,
		CountAfter:  newCount,
		LevelBefore: state.Level,
		LevelAfter:  next.Level,
		PowerBefore: state.TotalPower,
		PowerAfter:  newPower,
		LeveledUp:   rawLevel > state.Level && rawLevel < armor.TierCount,
	}
}

// StepsToNextChest is how many steps remain before the next chest.
func StepsToNextChest(count int) int {
	return StepsPerChest - count%StepsPerChest
}

// Tile is the knight's position on the current stretch of map, 0..9.
func Tile(count int) int {
	return count % StepsPerChest
}

// PowerCeiling is the top of the power gauge for a level.
func PowerCeiling(level int) float64 {
	return float64(level+1) * 200
}
