package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"knight-quest/internal/database"
)

const (
	MinSteps = 1
	MaxSteps = 100
)

// ClampSteps bounds a step count into [MinSteps, MaxSteps].
func ClampSteps(steps int) int {
	if steps < MinSteps {
		return MinSteps
	}
	if steps > MaxSteps {
		return MaxSteps
	}
	return steps
}

// TaskList is the ordered quest collection, most recent first. It is not
// safe for concurrent use; GameService owns the only live instance.
type TaskList struct {
	tasks []database.Task
}

func NewTaskList(tasks []database.Task) *TaskList {
	l := &TaskList{tasks: make([]database.Task, len(tasks))}
	copy(l.tasks, tasks)
	for i := range l.tasks {
		if l.tasks[i].Steps < MinSteps {
			l.tasks[i].Steps = MinSteps
		}
		if !l.tasks[i].Frequency.IsValid() {
			l.tasks[i].Frequency = database.Once
		}
	}
	return l
}

func (l *TaskList) Clone() *TaskList {
	out := &TaskList{tasks: make([]database.Task, len(l.tasks))}
	copy(out.tasks, l.tasks)
	return out
}

// Tasks returns a copy of the quests in display order.
func (l *TaskList) Tasks() []database.Task {
	out := make([]database.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Add inserts a new quest at the head of the list. The title is kept verbatim.
func (l *TaskList) Add(title string, freq database.Frequency, steps int, now time.Time) database.Task {
	if !freq.IsValid() {
		freq = database.Once
	}
	task := database.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
		Frequency: freq,
		Steps:     ClampSteps(steps),
		CreatedAt: now.UnixMilli(),
	}
	l.tasks = append([]database.Task{task}, l.tasks...)
	return task
}

// Toggle flips a quest's completion. nowCompleted is true only for the
// incomplete to complete transition. Unknown ids report found=false.
func (l *TaskList) Toggle(id, today string) (task database.Task, nowCompleted, found bool) {
	i := l.index(id)
	if i < 0 {
		return database.Task{}, false, false
	}

	t := &l.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		t.LastCompletedDate = today
	}
	return *t, t.Completed, true
}

// Delete removes a quest. Unknown ids report found=false.
func (l *TaskList) Delete(id string) (database.Task, bool) {
	i := l.index(id)
	if i < 0 {
		return database.Task{}, false
	}
	task := l.tasks[i]
	l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
	return task, true
}

// ResetDaily un-completes daily quests not completed today and returns how
// many were reset. LastCompletedDate is left as is.
func (l *TaskList) ResetDaily(today string) int {
	n := 0
	for i := range l.tasks {
		t := &l.tasks[i]
		if t.Frequency == database.Daily && t.LastCompletedDate != today && t.Completed {
			t.Completed = false
			n++
		}
	}
	return n
}

// Cleared returns the number of completed quests and the total.
func (l *TaskList) Cleared() (done, total int) {
	for _, t := range l.tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(l.tasks)
}

// Resolve maps a user reference to a quest id. A reference is a full id, a
// 1-based position in the list, or an unambiguous id prefix.
func (l *TaskList) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if i := l.index(ref); i >= 0 {
		return ref, true
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(l.tasks) {
			return l.tasks[n-1].ID, true
		}
		return "", false
	}

	match := ""
	for _, t := range l.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", false
			}
			match = t.ID
		}
	}
	return match, match != ""
}

func (l *TaskList) index(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
