package services

import (
	"fmt"
	"strings"
	"time"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/utils"
)

// Overview is the knight's status as shown on the map screen.
type Overview struct {
	KnightName     string
	Level          int
	Armor          armor.Set
	TotalPower     float64
	PowerCeiling   float64
	CompletedSteps int
	Tile           int
	StepsToChest   int
	Cleared        int
	Total          int
	Features       []armor.Feature
	NextFeature    *armor.Feature
	StoriesTold    int
	StoryBusy      bool
}

// WeeklyRecap summarises quests last completed during the current ISO week.
type WeeklyRecap struct {
	WeekNumber  int
	StartDate   string
	EndDate     string
	Completed   []database.Task
	Steps       int
	ByFrequency map[database.Frequency]int
	Insights    string
}

type StatsService struct {
	game *GameService
}

func NewStatsService(game *GameService) *StatsService {
	return &StatsService{game: game}
}

func (ss *StatsService) Overview() Overview {
	state := ss.game.State()
	tasks := ss.game.Tasks()
	worn := armor.ForLevel(state.Level)

	cleared, total := NewTaskList(tasks).Cleared()

	o := Overview{
		KnightName:     state.KnightName,
		Level:          state.Level,
		Armor:          worn,
		TotalPower:     state.TotalPower,
		PowerCeiling:   PowerCeiling(state.Level),
		CompletedSteps: state.CompletedTaskCount,
		Tile:           Tile(state.CompletedTaskCount),
		StepsToChest:   StepsToNextChest(state.CompletedTaskCount),
		Cleared:        cleared,
		Total:          total,
		Features:       armor.Features(state.Level),
		StoriesTold:    len(state.StoryHistory),
		StoryBusy:      ss.game.StoryBusy(),
	}
	if f, ok := armor.NextFeature(state.Level); ok {
		o.NextFeature = &f
	}
	return o
}

func (ss *StatsService) Weekly(now time.Time) WeeklyRecap {
	loc := ss.game.loc
	_, week := now.In(loc).ISOWeek()
	start, end := utils.ISOWeekRange(now, loc)

	recap := WeeklyRecap{
		WeekNumber:  week,
		StartDate:   start,
		EndDate:     end,
		ByFrequency: make(map[database.Frequency]int),
	}
	for _, t := range ss.game.Tasks() {
		if t.LastCompletedDate == "" || t.LastCompletedDate < start || t.LastCompletedDate > end {
			continue
		}
		recap.Completed = append(recap.Completed, t)
		recap.Steps += t.Steps
		recap.ByFrequency[t.Frequency]++
	}
	recap.Insights = ss.generateInsights(recap)
	return recap
}

func (ss *StatsService) generateInsights(recap WeeklyRecap) string {
	var insights []string

	switch {
	case len(recap.Completed) == 0:
		return "🕯 No quests finished this week. The road is long, but it starts with one step."
	case recap.Steps >= StepsPerChest:
		insights = append(insights, fmt.Sprintf("🎁 %d steps this week, a chest's worth of progress", recap.Steps))
	default:
		insights = append(insights, fmt.Sprintf("📈 %d steps this week, %d short of a full chest", recap.Steps, StepsPerChest-recap.Steps))
	}

	if recap.ByFrequency[database.Daily] > 0 {
		insights = append(insights, "☀️ Daily quests kept the blade sharp")
	}
	if recap.ByFrequency[database.Weekly] == 0 {
		insights = append(insights, "🗓 No weekly quest was finished this week")
	}

	return strings.Join(insights, "\n")
}
