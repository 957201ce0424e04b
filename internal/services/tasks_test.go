package services

import (
	"testing"
	"time"

	"knight-quest/internal/database"
)

func TestAddInsertsAtHead(t *testing.T) {
	l := NewTaskList(nil)
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	first := l.Add("Clean armor", database.Once, 10, now)
	second := l.Add("  Feed the horse ", database.Daily, 2, now.Add(time.Minute))

	tasks := l.Tasks()
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("order=%+v, want newest first", tasks)
	}
	if second.Title != "  Feed the horse " {
		t.Fatalf("title=%q, want verbatim", second.Title)
	}
	if first.ID == second.ID || first.ID == "" {
		t.Fatalf("ids not unique: %q %q", first.ID, second.ID)
	}
	if first.CreatedAt != now.UnixMilli() {
		t.Fatalf("createdAt=%d, want %d", first.CreatedAt, now.UnixMilli())
	}
	if first.Completed || first.LastCompletedDate != "" {
		t.Fatalf("new task should be open: %+v", first)
	}
}

func TestAddClampsSteps(t *testing.T) {
	l := NewTaskList(nil)
	cases := map[int]int{-4: 1, 0: 1, 1: 1, 37: 37, 100: 100, 250: 100}
	for in, want := range cases {
		if got := l.Add("x", database.Once, in, time.Now()).Steps; got != want {
			t.Fatalf("Add steps %d -> %d, want %d", in, got, want)
		}
	}
	if got := l.Add("x", database.Frequency("monthly"), 1, time.Now()).Frequency; got != database.Once {
		t.Fatalf("unknown frequency became %q, want once", got)
	}
}

func TestToggle(t *testing.T) {
	l := NewTaskList(nil)
	task := l.Add("Slay dragon", database.Weekly, 3, time.Now())

	got, nowCompleted, found := l.Toggle(task.ID, "2026-10-15")
	if !found || !nowCompleted || !got.Completed || got.LastCompletedDate != "2026-10-15" {
		t.Fatalf("complete: task=%+v nowCompleted=%v found=%v", got, nowCompleted, found)
	}

	got, nowCompleted, found = l.Toggle(task.ID, "2026-10-16")
	if !found || nowCompleted || got.Completed {
		t.Fatalf("un-complete: task=%+v nowCompleted=%v", got, nowCompleted)
	}
	if got.LastCompletedDate != "2026-10-15" {
		t.Fatalf("un-complete touched lastCompletedDate: %q", got.LastCompletedDate)
	}

	before := l.Tasks()
	if _, _, found := l.Toggle("missing", "2026-10-16"); found {
		t.Fatalf("unknown id reported found")
	}
	if after := l.Tasks(); len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("unknown toggle changed the list")
	}
}

func TestDelete(t *testing.T) {
	l := NewTaskList(nil)
	a := l.Add("a", database.Once, 1, time.Now())
	b := l.Add("b", database.Once, 1, time.Now())
	c := l.Add("c", database.Once, 1, time.Now())

	if _, ok := l.Delete(b.ID); !ok {
		t.Fatalf("delete b failed")
	}
	tasks := l.Tasks()
	if len(tasks) != 2 || tasks[0].ID != c.ID || tasks[1].ID != a.ID {
		t.Fatalf("after delete=%+v", tasks)
	}
	if _, ok := l.Delete(b.ID); ok {
		t.Fatalf("second delete of b reported found")
	}
	if l.Len() != 2 {
		t.Fatalf("len=%d, want 2", l.Len())
	}
}

func TestResetDaily(t *testing.T) {
	today := "2026-10-15"
	l := NewTaskList([]database.Task{
		{ID: "d-old", Frequency: database.Daily, Completed: true, Steps: 1, LastCompletedDate: "2026-10-14"},
		{ID: "d-today", Frequency: database.Daily, Completed: true, Steps: 1, LastCompletedDate: today},
		{ID: "d-never", Frequency: database.Daily, Completed: true, Steps: 1},
		{ID: "w-old", Frequency: database.Weekly, Completed: true, Steps: 1, LastCompletedDate: "2026-10-01"},
		{ID: "o-old", Frequency: database.Once, Completed: true, Steps: 1, LastCompletedDate: "2025-01-01"},
	})

	if n := l.ResetDaily(today); n != 2 {
		t.Fatalf("ResetDaily reset %d, want 2", n)
	}

	want := map[string]bool{"d-old": false, "d-today": true, "d-never": false, "w-old": true, "o-old": true}
	for _, task := range l.Tasks() {
		if task.Completed != want[task.ID] {
			t.Fatalf("%s completed=%v, want %v", task.ID, task.Completed, want[task.ID])
		}
	}
	if l.Tasks()[0].LastCompletedDate != "2026-10-14" {
		t.Fatalf("ResetDaily touched lastCompletedDate")
	}
}

func TestNewTaskListRepairsSteps(t *testing.T) {
	l := NewTaskList([]database.Task{{ID: "x", Steps: 0, Frequency: ""}})
	got := l.Tasks()[0]
	if got.Steps != 1 || got.Frequency != database.Once {
		t.Fatalf("repaired task=%+v", got)
	}
}

func TestResolve(t *testing.T) {
	l := NewTaskList([]database.Task{
		{ID: "abc-1", Steps: 1, Frequency: database.Once},
		{ID: "abd-2", Steps: 1, Frequency: database.Once},
		{ID: "xyz-3", Steps: 1, Frequency: database.Once},
	})
	cases := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"abc-1", "abc-1", true},
		{"2", "abd-2", true},
		{"4", "", false},
		{"xy", "xyz-3", true},
		{"ab", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := l.Resolve(tc.ref)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Resolve(%q)=%q,%v want %q,%v", tc.ref, got, ok, tc.want, tc.ok)
		}
	}
}
