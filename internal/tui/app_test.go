package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/focusboard/internal/config"
	"github.com/kingrea/focusboard/internal/logbook"
)

func TestEnterInsertsRowAtEndAndFocusesIt(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	before := app.Store().Len()

	press(t, app, enterKey())
	if app.mode != modeEditTitle || app.editingID != 1 {
		t.Fatalf("expected title edit on task 1, got mode=%d id=%d", app.mode, app.editingID)
	}
	press(t, app, enterKey())

	tasks := app.Store().Tasks()
	if len(tasks) != before+1 {
		t.Fatalf("len = %d, want %d", len(tasks), before+1)
	}
	last := tasks[len(tasks)-1]
	if last.ID != 7 || last.MemberID != "me" || last.Title != "" || last.HasNote() || last.Done {
		t.Fatalf("unexpected inserted task %+v", last)
	}
	if app.mode != modeEditTitle || app.editingID != last.ID {
		t.Fatalf("focus should move to the new row, got mode=%d id=%d", app.mode, app.editingID)
	}
	if app.column != 0 || app.row != 3 {
		t.Fatalf("cursor = (%d,%d), want (0,3)", app.column, app.row)
	}

	press(t, app, runes("ship it"))
	got, _ := app.Store().Task(last.ID)
	if got.Title != "ship it" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestShiftEnterOpensNote(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(t, app, keyRunes("j"), enterKey())
	if app.editingID != 2 {
		t.Fatalf("expected to edit task 2, got %d", app.editingID)
	}
	before := app.Store().Len()

	press(t, app, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if app.mode != modeEditNote {
		t.Fatalf("mode = %d, want note edit", app.mode)
	}
	if app.Store().Len() != before {
		t.Fatalf("opening a note must not insert a row")
	}
	task, _ := app.Store().Task(2)
	if !task.HasNote() || task.NoteText() != "" {
		t.Fatalf("expected empty note, got %+v", task)
	}

	press(t, app, runes("line one"), enterKey(), runes("line two"))
	task, _ = app.Store().Task(2)
	if task.NoteText() != "line one\nline two" {
		t.Fatalf("note = %q", task.NoteText())
	}
	if app.Store().Len() != before {
		t.Fatalf("enter inside a note must add a newline, not a row")
	}

	press(t, app, escKey())
	if app.mode != modeBrowse {
		t.Fatalf("esc should return to browsing")
	}
}

func TestOtherMembersAreReadOnly(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	before := app.Store().Tasks()

	press(t, app, keyRunes("l"))
	if app.column != 1 {
		t.Fatalf("column = %d, want 1", app.column)
	}
	for _, msg := range []tea.KeyMsg{keyRunes("x"), enterKey(), keyRunes("a"), keyRunes("n"), keyRunes("d")} {
		press(t, app, msg)
		if app.mode != modeBrowse {
			t.Fatalf("%q should not start editing", msg.String())
		}
		if !strings.Contains(app.statusMsg, "read only") {
			t.Fatalf("%q status = %q", msg.String(), app.statusMsg)
		}
	}
	after := app.Store().Tasks()
	if len(after) != len(before) {
		t.Fatalf("read-only keys changed the board: %v", after)
	}
	for idx := range before {
		if before[idx].Done != after[idx].Done || before[idx].HasNote() != after[idx].HasNote() {
			t.Fatalf("task %d changed: %+v -> %+v", before[idx].ID, before[idx], after[idx])
		}
	}
}

func TestToggleMarksDone(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(t, app, keyRunes("x"))
	task, _ := app.Store().Task(1)
	if !task.Done {
		t.Fatalf("task 1 should be done")
	}
	press(t, app, keyRunes(" "))
	task, _ = app.Store().Task(1)
	if task.Done {
		t.Fatalf("task 1 should be open again")
	}
}

func TestRemoveRowClampsCursor(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(t, app, keyRunes("j"), keyRunes("j"))
	if app.row != 2 {
		t.Fatalf("row = %d, want 2", app.row)
	}
	press(t, app, keyRunes("d"))
	if _, ok := app.Store().Task(3); ok {
		t.Fatalf("task 3 should be removed")
	}
	if app.row != 1 {
		t.Fatalf("cursor should clamp to row 1, got %d", app.row)
	}
}

func TestLastRowCannotBeRemoved(t *testing.T) {
	projectDir := t.TempDir()
	path := filepath.Join(projectDir, "solo.yaml")
	body := "version: 1\nviewer: me\nmembers:\n  - id: me\ntasks:\n  - id: 1\n    member: me\n    title: only\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(projectDir, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	book, err := logbook.New(cfg.JournalPath(), logbook.Options{Session: "solo"})
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })
	app := NewApp(cfg, WithLogbook(book))

	press(t, app, keyRunes("d"))
	if app.Store().Len() != 1 {
		t.Fatalf("last row was removed")
	}
	if !strings.Contains(app.statusMsg, "last row") {
		t.Fatalf("status = %q", app.statusMsg)
	}
	lines, _ := book.Tail(1)
	if len(lines) != 1 || !strings.Contains(lines[0], "remove skipped") {
		t.Fatalf("expected a warning entry, got %v", lines)
	}
}

func TestAddAndRemoveNote(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(t, app, keyRunes("j"), keyRunes("n"))
	if app.mode != modeEditNote || app.editingID != 2 {
		t.Fatalf("n should open the note editor on task 2")
	}
	press(t, app, runes("bring slides"), escKey())
	task, _ := app.Store().Task(2)
	if task.NoteText() != "bring slides" {
		t.Fatalf("note = %q", task.NoteText())
	}

	press(t, app, keyRunes("N"))
	task, _ = app.Store().Task(2)
	if task.HasNote() {
		t.Fatalf("note should be removed")
	}
	press(t, app, keyRunes("E"))
	if app.mode != modeBrowse || !strings.Contains(app.statusMsg, "no note") {
		t.Fatalf("E without a note should explain, got mode=%d status=%q", app.mode, app.statusMsg)
	}
}

func TestAddRowKeyAppendsForViewer(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(t, app, keyRunes("a"))
	tasks := app.Store().Tasks()
	last := tasks[len(tasks)-1]
	if last.MemberID != "me" || app.editingID != last.ID {
		t.Fatalf("unexpected row %+v editing %d", last, app.editingID)
	}
}

func TestViewShowsMembersAndProgress(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	view := app.View()
	for _, want := range []string{"TODAY'S FOCUS", "Me", "Alice", "Bob", "1 / 6 done", "read only", "Share the latest mocks"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestViewShowsActivityPanel(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := config.Load(projectDir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	book, err := logbook.New(cfg.JournalPath(), logbook.Options{})
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })
	app := NewApp(cfg, WithLogbook(book))
	press(t, app, keyRunes("L"))
	if !strings.Contains(app.View(), "board opened") {
		t.Fatalf("activity panel should show the journal")
	}
}

func TestVisibleColumns(t *testing.T) {
	tests := []struct {
		name                  string
		width, col, count, at int
		wantStart, wantEnd    int
	}{
		{name: "unsized shows all", width: 0, col: 36, count: 3, at: 2, wantStart: 0, wantEnd: 3},
		{name: "all fit", width: 200, col: 36, count: 3, at: 0, wantStart: 0, wantEnd: 3},
		{name: "focus in first page", width: 80, col: 36, count: 4, at: 1, wantStart: 0, wantEnd: 2},
		{name: "focus scrolls", width: 80, col: 36, count: 4, at: 3, wantStart: 2, wantEnd: 4},
		{name: "narrow keeps one", width: 10, col: 36, count: 3, at: 1, wantStart: 1, wantEnd: 2},
		{name: "empty", width: 80, col: 36, count: 0, at: 0, wantStart: 0, wantEnd: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleColumns(tt.width, tt.col, tt.count, tt.at)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("visibleColumns = [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestEditorRows(t *testing.T) {
	tests := map[string]int{
		"":                 2,
		"single line":      2,
		"a\nb":             3,
		"a\nb\nc":          4,
		"a\nb\nc\nd\ne\nf": maxEditorRows,
	}
	for text, want := range tests {
		if got := editorRows(text); got != want {
			t.Fatalf("editorRows(%q) = %d, want %d", text, got, want)
		}
	}
}

func newTestApp(t *testing.T, projectDir string, opts ...AppOption) *App {
	t.Helper()
	cfg, err := config.Load(projectDir, "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return NewApp(cfg, opts...)
}

// press feeds key messages through Update. Returned commands are dropped;
// the editor's cursor blink would otherwise tick forever.
func press(t *testing.T, app *App, msgs ...tea.KeyMsg) {
	t.Helper()
	for _, msg := range msgs {
		model, _ := app.Update(msg)
		if model != app {
			t.Fatalf("unexpected model %T", model)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runes types s into the focused editor in one message.
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func escKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEsc} }
