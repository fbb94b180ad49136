package board

import "strings"

// Key is the meaning of a key press inside a task's title field.
type Key int

const (
	KeyOther      Key = iota // ordinary text editing
	KeyEnter                 // insert the next row
	KeyShiftEnter            // open the note
)

// KeyMap maps terminal key names (as reported by bubbletea) to Keys.
// Most terminals cannot tell Shift+Enter from Enter, so the note keys also
// accept the sequences terminals commonly send for it.
type KeyMap struct {
	Insert []string
	Note   []string
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Insert: []string{"enter"},
		Note:   []string{"shift+enter", "alt+enter", "ctrl+j"},
	}
}

// Merge adds extra key names on top of km.
func (km KeyMap) Merge(insert, note []string) KeyMap {
	out := KeyMap{
		Insert: append([]string(nil), km.Insert...),
		Note:   append([]string(nil), km.Note...),
	}
	out.Insert = appendKeys(out.Insert, insert)
	out.Note = appendKeys(out.Note, note)
	return out
}

// Classify resolves a key name. Note bindings win over insert bindings.
func (km KeyMap) Classify(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KeyOther
	}
	if containsKey(km.Note, name) {
		return KeyShiftEnter
	}
	if containsKey(km.Insert, name) {
		return KeyEnter
	}
	return KeyOther
}

// Action is what Dispatch did with a key.
type Action int

const (
	ActionPassThrough Action = iota
	ActionReadOnly
	ActionNoteOpened
	ActionRowInserted
)

// Outcome reports the result of Dispatch. TaskID is the task that should
// receive focus next: the new row after an insert, the edited task
// otherwise.
type Outcome struct {
	Action Action
	TaskID int
}

// Handled reports whether the default editing behavior must be suppressed.
func (o Outcome) Handled() bool {
	return o.Action != ActionPassThrough
}

// Dispatch runs the title-field shortcuts for task. Shift+Enter opens the
// note, Enter appends a blank row for the same member at the end of the
// board. Tasks the viewer may not edit swallow the key.
func Dispatch(s *Store, task Task, key Key) Outcome {
	if !s.Editable(task.MemberID) {
		if key == KeyOther {
			return Outcome{Action: ActionPassThrough, TaskID: task.ID}
		}
		return Outcome{Action: ActionReadOnly, TaskID: task.ID}
	}
	switch key {
	case KeyShiftEnter:
		s.EnsureNote(task.ID)
		return Outcome{Action: ActionNoteOpened, TaskID: task.ID}
	case KeyEnter:
		id, ok := s.Insert(task.MemberID)
		if !ok {
			return Outcome{Action: ActionReadOnly, TaskID: task.ID}
		}
		return Outcome{Action: ActionRowInserted, TaskID: id}
	default:
		return Outcome{Action: ActionPassThrough, TaskID: task.ID}
	}
}

func appendKeys(dst, extra []string) []string {
	for _, k := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || containsKey(dst, k) {
			continue
		}
		dst = append(dst, k)
	}
	return dst
}

func containsKey(keys []string, name string) bool {
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return true
		}
	}
	return false
}
