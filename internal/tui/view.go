package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/focusboard/internal/board"
)

const logPanelLines = 6

var (
	eyebrowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	badgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#A0AEC0")).Padding(0, 1)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	memberStyle      = lipgloss.NewStyle().Bold(true)
	readOnlyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Italic(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true)
	doneTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Strikethrough(true)
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	checkDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	removeMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	addRowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	noteStyle        = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A0AEC0")).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#444444")).
				PaddingLeft(1).
				MarginLeft(6)
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	focusedBorder = lipgloss.Color("#5B8DEF")
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// View renders the current state to a string.
func (a *App) View() string {
	sections := []string{a.renderHeader(), a.renderColumns()}
	if a.showLog {
		if panel := a.renderLogPanel(); panel != "" {
			sections = append(sections, panel)
		}
	}
	sections = append(sections, a.help.View(helpKeys{keys: a.keys, mode: a.mode}))
	if a.statusMsg != "" {
		sections = append(sections, statusStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := "Tasks by member"
	if a.config != nil && a.config.Board.Title != "" {
		title = a.config.Board.Title
	}
	badge := badgeStyle.Render(a.store.Progress().String())
	line := lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render(title), "  ", badge)
	hint := hintStyle.Render("Only your column is editable; other members are read only. " +
		"Enter adds the next row, Shift+Enter opens a note.")
	return lipgloss.JoinVertical(lipgloss.Left,
		eyebrowStyle.Render("TODAY'S FOCUS"),
		line,
		hint,
		"",
	)
}

func (a *App) renderColumns() string {
	if len(a.members) == 0 {
		return hintStyle.Render("No members configured")
	}
	start, end := visibleColumns(a.width, a.columnWidth(), len(a.members), a.column)
	cols := make([]string, 0, end-start+2)
	if start > 0 {
		cols = append(cols, hintStyle.Render("‹ "))
	}
	for idx := start; idx < end; idx++ {
		cols = append(cols, a.renderColumn(idx))
	}
	if end < len(a.members) {
		cols = append(cols, hintStyle.Render(" ›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderColumn(idx int) string {
	member := a.members[idx]
	editable := a.store.Editable(member.ID)
	inner := a.columnWidth() - 2

	name := memberStyle.Render(member.Name)
	badge := badgeStyle.Render(a.store.MemberProgress(member.ID).String())
	gap := max(1, inner-lipgloss.Width(name)-lipgloss.Width(badge))
	lines := []string{name + strings.Repeat(" ", gap) + badge}
	if !editable {
		lines = append(lines, readOnlyStyle.Render("read only"))
	}
	lines = append(lines, "")

	for rowIdx, task := range a.store.ForMember(member.ID) {
		focused := idx == a.column && rowIdx == a.row
		lines = append(lines, a.renderRow(task, focused, editable))
	}
	if editable {
		lines = append(lines, addRowStyle.Render("+ add row (a)"))
	}

	style := columnStyle.Width(a.columnWidth())
	if idx == a.column {
		style = style.BorderForeground(focusedBorder)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) renderRow(task board.Task, focused, editable bool) string {
	cursor := "  "
	if focused {
		cursor = cursorStyle.Render("› ")
	}
	check := "[ ] "
	if task.Done {
		check = checkDoneStyle.Render("[x]") + " "
	}

	var title string
	switch {
	case a.mode == modeEditTitle && a.editingID == task.ID:
		title = a.editor.View()
	case task.Title == "":
		title = placeholderStyle.Width(a.titleWidth()).Render(titlePlaceholder)
	case task.Done:
		title = doneTitleStyle.Width(a.titleWidth()).Render(task.Title)
	default:
		title = lipgloss.NewStyle().Width(a.titleWidth()).Render(task.Title)
	}

	parts := []string{cursor, check, title}
	if editable {
		parts = append(parts, removeMarkStyle.Render(" ×"))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, parts...)}

	switch {
	case task.HasNote():
		lines = append(lines, a.renderNote(task))
	case editable:
		lines = append(lines, hintStyle.MarginLeft(6).Render("+ note (n)"))
	}
	lines = append(lines, "")
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderNote(task board.Task) string {
	if a.mode == modeEditNote && a.editingID == task.ID {
		return noteStyle.Render(a.editor.View())
	}
	body := task.NoteText()
	if body == "" {
		return noteStyle.Render(placeholderStyle.Render(notePlaceholder))
	}
	return noteStyle.Width(a.noteWidth()).Render(body)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("ACTIVITY · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

// visibleColumns returns the [start, end) range of columns that fit in
// width, keeping the focused column on screen. A zero width shows all.
func visibleColumns(width, columnWidth, count, focused int) (int, int) {
	if count == 0 {
		return 0, 0
	}
	if width <= 0 {
		return 0, count
	}
	perScreen := max(1, width/(columnWidth+2))
	if perScreen >= count {
		return 0, count
	}
	start := 0
	if focused >= perScreen {
		start = focused - perScreen + 1
	}
	end := min(count, start+perScreen)
	return start, end
}
