package board

import "fmt"

// Member owns one column of the board.
type Member struct {
	ID   string
	Name string
}

// Task is a single checklist row. A nil Note means the row has no note
// block at all; a note that is present may still be empty.
type Task struct {
	ID       int
	MemberID string
	Title    string
	Note     *string
	Done     bool
}

// NoteOf returns a present note holding text.
func NoteOf(text string) *string {
	return &text
}

// HasNote reports whether the note block is present.
func (t Task) HasNote() bool {
	return t.Note != nil
}

// NoteText returns the note body, or "" when absent.
func (t Task) NoteText() string {
	if t.Note == nil {
		return ""
	}
	return *t.Note
}

func (t Task) clone() Task {
	if t.Note != nil {
		t.Note = NoteOf(*t.Note)
	}
	return t
}

func (t Task) equal(other Task) bool {
	if t.ID != other.ID || t.MemberID != other.MemberID || t.Title != other.Title || t.Done != other.Done {
		return false
	}
	if t.HasNote() != other.HasNote() {
		return false
	}
	return t.NoteText() == other.NoteText()
}

// Progress counts completed rows.
type Progress struct {
	Done  int
	Total int
}

func (p Progress) String() string {
	return fmt.Sprintf("%d / %d done", p.Done, p.Total)
}
