package database

// Frequency says how often a quest recurs.
type Frequency string

const (
	Once   Frequency = "once"
	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
)

var FrequencyNames = map[Frequency]string{
	Once:   "Once",
	Daily:  "Daily",
	Weekly: "Weekly",
}

func (f Frequency) IsValid() bool {
	_, ok := FrequencyNames[f]
	return ok
}

// Task is a quest. CreatedAt is milliseconds since the Unix epoch and
// LastCompletedDate is a YYYY-MM-DD date in the tracker's time zone.
type Task struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Completed         bool      `json:"completed"`
	Frequency         Frequency `json:"frequency"`
	Steps             int       `json:"steps"`
	LastCompletedDate string    `json:"lastCompletedDate,omitempty"`
	CreatedAt         int64     `json:"createdAt"`
}

// GameState is the knight's persisted progression.
// Level always equals min(CompletedTaskCount/10, 99).
type GameState struct {
	CompletedTaskCount int      `json:"completedTaskCount"`
	Level              int      `json:"level"`
	TotalPower         float64  `json:"totalPower"`
	KnightName         string   `json:"knightName"`
	StoryHistory       []string `json:"storyHistory"`
	LastStoryStep      int      `json:"lastStoryStep"`
}

const (
	DefaultKnightName = "Sir Productivity"
	InitialPower      = 10.0
)

// NewGameState returns the state of a knight who has not done anything yet.
func NewGameState(knightName string) GameState {
	if knightName == "" {
		knightName = DefaultKnightName
	}
	return GameState{
		TotalPower:   InitialPower,
		KnightName:   knightName,
		StoryHistory: []string{},
	}
}

// Clone returns a deep copy so callers can mutate history freely.
func (s GameState) Clone() GameState {
	out := s
	out.StoryHistory = append([]string(nil), s.StoryHistory...)
	if out.StoryHistory == nil {
		out.StoryHistory = []string{}
	}
	return out
}
