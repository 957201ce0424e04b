package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"knight-quest/internal/armor"
	"knight-quest/internal/database"
	"knight-quest/internal/services"
)

func init() {
	color.NoColor = true
}

// setupWorkspace points the CLI at a fresh database with narration offline.
func setupWorkspace(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, key := range []string{"TG_TOKEN", "TG_CHAT_ID", "GEMINI_API_KEY", "KNIGHT_NAME", "TIMEZONE", "NARRATION_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("DB_PATH", filepath.Join(dir, "quest.db"))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := RootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestQuestLifecycle(t *testing.T) {
	setupWorkspace(t)

	out := run(t, "quest", "add", "--steps", "10", "Clean", "armor")
	if !strings.Contains(out, "Enlisted Clean armor (once, 10 steps)") {
		t.Fatalf("add output:\n%s", out)
	}

	out = run(t, "quest", "list")
	if !strings.Contains(out, "Clean armor") || !strings.Contains(out, "open") {
		t.Fatalf("list output:\n%s", out)
	}

	out = run(t, "quest", "done", "1")
	for _, want := range []string{"Completed Clean armor", "power 10 → 210", "CHEST OPENED Level 1! New armor: Initiate Mail", "A page is found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("done output missing %q:\n%s", want, out)
		}
	}

	out = run(t, "status")
	if !strings.Contains(out, "Sir Productivity, level 1") || !strings.Contains(out, "Power:     210 / 400") {
		t.Fatalf("status output:\n%s", out)
	}

	out = run(t, "export")
	if !strings.Contains(out, `"completedTaskCount": 10`) || !strings.Contains(out, database.TasksKey) {
		t.Fatalf("export output:\n%s", out)
	}

	out = run(t, "chronicle")
	if !strings.Contains(out, "1. ") {
		t.Fatalf("chronicle output:\n%s", out)
	}

	run(t, "quest", "delete", "1")
	if out := run(t, "quest", "list"); !strings.Contains(out, "empty") {
		t.Fatalf("list after delete:\n%s", out)
	}
}

func TestQuestAddRejectsBadFrequency(t *testing.T) {
	setupWorkspace(t)
	root := RootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"quest", "add", "--frequency", "monthly", "Joust"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "invalid frequency") {
		t.Fatalf("err=%v", err)
	}
}

func TestArmorTierNeedsNoDatabase(t *testing.T) {
	chdir(t, t.TempDir())
	out := run(t, "armor", "--tier", "23")
	if !strings.Contains(out, "Avenger of Shadow (tier 23)") {
		t.Fatalf("armor output:\n%s", out)
	}
}

func TestRenderCatalog(t *testing.T) {
	var out bytes.Buffer
	renderCatalog(&out, armor.All())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != armor.TierCount+1 {
		t.Fatalf("catalog lines=%d", len(lines))
	}
	if !strings.Contains(lines[1], "Scrap Plate") || !strings.Contains(lines[100], "Zenith of Cosmos") {
		t.Fatalf("catalog rows:\n%s\n%s", lines[1], lines[100])
	}
}

func TestRenderToggleReopen(t *testing.T) {
	var out bytes.Buffer
	renderToggle(&out, &services.ToggleResult{Found: true, Task: database.Task{Title: "Pray"}})
	if !strings.Contains(out.String(), "Reopened Pray") {
		t.Fatalf("output=%q", out.String())
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
