// internal/tui/app.go
//
// This is the terminal UI for focusboard. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: the board store plus focus and editing state
// 2. Update: key presses become store operations
// 3. View: columns of rows rendered with lipgloss
//
// The store enforces who may edit what. The UI checks the same policy only
// to explain why a key did nothing.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/focusboard/internal/board"
	"github.com/kingrea/focusboard/internal/config"
	"github.com/kingrea/focusboard/internal/logbook"
)

// editMode represents what the keyboard is currently driving
type editMode int

const (
	modeBrowse    editMode = iota // moving between rows
	modeEditTitle                 // typing into a row's title
	modeEditNote                  // typing into a row's note
)

const (
	titlePlaceholder = "Write a task, Enter adds the next"
	notePlaceholder  = "Details, links…"
	maxEditorRows    = 5
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook attaches the session journal.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithStore replaces the store seeded from config.
func WithStore(store *board.Store) AppOption {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// App is the main application model.
type App struct {
	config    *config.Config
	store     *board.Store
	members   []board.Member
	shortcuts board.KeyMap
	logbook   *logbook.Logbook

	keys   keyMap
	help   help.Model
	editor textarea.Model

	mode      editMode
	editingID int
	column    int
	row       int

	showLog   bool
	statusMsg string

	width  int
	height int
}

// NewApp builds the board UI from a loaded config.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config:    cfg,
		store:     board.NewStore(cfg.Policy(), cfg.SeedTasks()),
		members:   cfg.Members(),
		shortcuts: cfg.KeyMap(),
		keys:      newKeyMap(),
		help:      help.New(),
		editor:    newEditor(),
		showLog:   cfg.Board.UI.ShowLog,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.column = app.memberColumn(cfg.Board.Viewer)
	app.logInfo("board opened", "viewer", cfg.Board.Viewer, "tasks", app.store.Len())
	return app
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(editorRows(""))
	return ta
}

// Store exposes the board state, mainly for the entry point and tests.
func (a *App) Store() *board.Store {
	return a.store
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.logInfo("board closed", "tasks", a.store.Len())
			return a, tea.Quit
		}
		if a.mode != modeBrowse {
			return a.updateEditing(msg)
		}
		return a.updateBrowsing(msg)
	}

	if a.mode != modeBrowse {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.statusMsg = ""
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("board closed", "tasks", a.store.Len())
		return a, tea.Quit
	case key.Matches(msg, a.keys.Left):
		a.moveColumn(-1)
	case key.Matches(msg, a.keys.Right):
		a.moveColumn(1)
	case key.Matches(msg, a.keys.Up):
		a.moveRow(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveRow(1)
	case key.Matches(msg, a.keys.Toggle):
		a.toggleFocused()
	case key.Matches(msg, a.keys.EditTitle):
		return a, a.beginEdit(modeEditTitle)
	case key.Matches(msg, a.keys.EditNote):
		return a, a.editFocusedNote()
	case key.Matches(msg, a.keys.AddNote):
		return a, a.addNote()
	case key.Matches(msg, a.keys.RemoveNote):
		a.removeNote()
	case key.Matches(msg, a.keys.AddRow):
		return a, a.addRow()
	case key.Matches(msg, a.keys.RemoveRow):
		a.removeRow()
	case key.Matches(msg, a.keys.ToggleLog):
		a.showLog = !a.showLog
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Done) {
		a.endEdit()
		return a, nil
	}
	task, ok := a.store.Task(a.editingID)
	if !ok {
		a.endEdit()
		return a, nil
	}
	if a.mode == modeEditTitle {
		out := board.Dispatch(a.store, task, a.shortcuts.Classify(msg.String()))
		switch out.Action {
		case board.ActionRowInserted:
			a.logInfo("row inserted", "task", out.TaskID, "member", task.MemberID)
			a.focusTask(out.TaskID)
			return a, a.beginEdit(modeEditTitle)
		case board.ActionNoteOpened:
			a.logInfo("note opened", "task", task.ID)
			return a, a.beginEdit(modeEditNote)
		case board.ActionReadOnly:
			a.endEdit()
			a.statusMsg = a.readOnlyStatus(task.MemberID)
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.commitEditor()
	return a, cmd
}

// beginEdit focuses the editor on the selected row's title or note.
func (a *App) beginEdit(mode editMode) tea.Cmd {
	task, ok := a.focusedTask()
	if !ok {
		a.statusMsg = "No row selected"
		return nil
	}
	if !a.store.Editable(task.MemberID) {
		a.statusMsg = a.readOnlyStatus(task.MemberID)
		return nil
	}
	if mode == modeEditNote && !task.HasNote() {
		a.statusMsg = "This row has no note. Press n to add one"
		return nil
	}
	if a.mode != modeBrowse {
		a.editor.Blur()
	}
	text := task.Title
	a.editor.Placeholder = titlePlaceholder
	a.editor.SetWidth(a.titleWidth())
	a.statusMsg = "Editing · Enter adds the next row, Shift+Enter opens a note"
	if mode == modeEditNote {
		text = task.NoteText()
		a.editor.Placeholder = notePlaceholder
		a.editor.SetWidth(a.noteWidth())
		a.statusMsg = "Editing note · Esc when done"
	}
	a.mode = mode
	a.editingID = task.ID
	a.editor.SetValue(text)
	a.editor.SetHeight(editorRows(text))
	return a.editor.Focus()
}

func (a *App) endEdit() {
	if a.mode != modeBrowse {
		field := "title"
		if a.mode == modeEditNote {
			field = "note"
		}
		a.logDebug("edit finished", "task", a.editingID, "field", field)
	}
	a.mode = modeBrowse
	a.editingID = 0
	a.editor.Blur()
	a.statusMsg = ""
	a.clampRow()
}

// commitEditor writes the editor contents back through the store.
func (a *App) commitEditor() {
	value := a.editor.Value()
	switch a.mode {
	case modeEditTitle:
		a.store.UpdateTitle(a.editingID, value)
	case modeEditNote:
		a.store.UpdateNote(a.editingID, value)
	}
	a.editor.SetHeight(editorRows(value))
}

func (a *App) toggleFocused() {
	task, ok := a.focusedTask()
	if !ok {
		return
	}
	if !a.store.Editable(task.MemberID) {
		a.statusMsg = a.readOnlyStatus(task.MemberID)
		return
	}
	if a.store.Toggle(task.ID, !task.Done) {
		a.logInfo("task toggled", "task", task.ID, "done", !task.Done)
	}
}

func (a *App) editFocusedNote() tea.Cmd {
	return a.beginEdit(modeEditNote)
}

func (a *App) addNote() tea.Cmd {
	task, ok := a.focusedTask()
	if !ok {
		return nil
	}
	if !a.store.Editable(task.MemberID) {
		a.statusMsg = a.readOnlyStatus(task.MemberID)
		return nil
	}
	if a.store.EnsureNote(task.ID) {
		a.logInfo("note opened", "task", task.ID)
	}
	return a.beginEdit(modeEditNote)
}

func (a *App) removeNote() {
	task, ok := a.focusedTask()
	if !ok {
		return
	}
	if !a.store.Editable(task.MemberID) {
		a.statusMsg = a.readOnlyStatus(task.MemberID)
		return
	}
	if !task.HasNote() {
		a.statusMsg = "This row has no note"
		return
	}
	if a.store.RemoveNote(task.ID) {
		a.logInfo("note removed", "task", task.ID)
	}
}

func (a *App) addRow() tea.Cmd {
	if len(a.members) == 0 {
		return nil
	}
	member := a.members[a.column]
	id, ok := a.store.Insert(member.ID)
	if !ok {
		a.statusMsg = a.readOnlyStatus(member.ID)
		return nil
	}
	a.logInfo("row inserted", "task", id, "member", member.ID)
	a.focusTask(id)
	return a.beginEdit(modeEditTitle)
}

func (a *App) removeRow() {
	task, ok := a.focusedTask()
	if !ok {
		return
	}
	if !a.store.Editable(task.MemberID) {
		a.statusMsg = a.readOnlyStatus(task.MemberID)
		return
	}
	if !a.store.Remove(task.ID) {
		a.statusMsg = "The last row on the board cannot be removed"
		a.logWarn("remove skipped", "task", task.ID, "reason", "last row")
		return
	}
	a.logInfo("row removed", "task", task.ID)
	a.clampRow()
}

func (a *App) moveColumn(delta int) {
	if len(a.members) == 0 {
		return
	}
	next := a.column + delta
	if next < 0 || next >= len(a.members) {
		return
	}
	a.column = next
	a.clampRow()
}

func (a *App) moveRow(delta int) {
	tasks := a.columnTasks(a.column)
	next := a.row + delta
	if next < 0 || next >= len(tasks) {
		return
	}
	a.row = next
}

func (a *App) clampRow() {
	count := len(a.columnTasks(a.column))
	if a.row >= count {
		a.row = count - 1
	}
	if a.row < 0 {
		a.row = 0
	}
}

func (a *App) columnTasks(column int) []board.Task {
	if column < 0 || column >= len(a.members) {
		return nil
	}
	return a.store.ForMember(a.members[column].ID)
}

func (a *App) focusedTask() (board.Task, bool) {
	tasks := a.columnTasks(a.column)
	if a.row < 0 || a.row >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[a.row], true
}

// focusTask moves the cursor to the row holding id.
func (a *App) focusTask(id int) {
	task, ok := a.store.Task(id)
	if !ok {
		return
	}
	a.column = a.memberColumn(task.MemberID)
	for idx, candidate := range a.columnTasks(a.column) {
		if candidate.ID == id {
			a.row = idx
			return
		}
	}
}

func (a *App) memberColumn(memberID string) int {
	for idx, m := range a.members {
		if m.ID == memberID {
			return idx
		}
	}
	return 0
}

func (a *App) memberName(memberID string) string {
	for _, m := range a.members {
		if m.ID == memberID {
			return m.Name
		}
	}
	return memberID
}

func (a *App) readOnlyStatus(memberID string) string {
	return fmt.Sprintf("%s's column is read only", a.memberName(memberID))
}

func (a *App) columnWidth() int {
	if a.config == nil || a.config.Board.UI.ColumnWidth <= 0 {
		return 36
	}
	return a.config.Board.UI.ColumnWidth
}

// titleWidth is the space left beside the cursor, checkbox, and remove mark.
func (a *App) titleWidth() int {
	return max(8, a.columnWidth()-12)
}

func (a *App) noteWidth() int {
	return max(8, a.columnWidth()-10)
}

// editorRows mirrors the row sizing of the title and note fields: two
// lines, or one more than the text needs (capped) once it holds newlines.
func editorRows(text string) int {
	if !strings.Contains(text, "\n") {
		return 2
	}
	return min(maxEditorRows, strings.Count(text, "\n")+2)
}

func (a *App) logInfo(msg string, keyvals ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(msg, keyvals...)
}

func (a *App) logWarn(msg string, keyvals ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(msg, keyvals...)
}

func (a *App) logDebug(msg string, keyvals ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Debug(msg, keyvals...)
}
