package board

// Store owns the ordered task collection for one board session.
type Store struct {
	policy Policy
	tasks  []Task
}

// NewStore seeds a store with a copy of tasks. The caller is responsible
// for handing in unique ids.
func NewStore(policy Policy, seed []Task) *Store {
	tasks := make([]Task, len(seed))
	for i := range seed {
		tasks[i] = seed[i].clone()
	}
	return &Store{policy: policy, tasks: tasks}
}

// Policy returns the editability policy the store enforces.
func (s *Store) Policy() Policy {
	return s.policy
}

// Editable reports whether tasks owned by memberID may be mutated.
func (s *Store) Editable(memberID string) bool {
	return s.policy.Editable(memberID)
}

// Len returns the number of tasks on the board.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the collection in board order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].clone()
	}
	return out
}

// Task looks up a task by id.
func (s *Store) Task(id int) (Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx].clone(), true
}

// ForMember returns the tasks owned by memberID, in board order.
func (s *Store) ForMember(memberID string) []Task {
	var out []Task
	for _, task := range s.tasks {
		if task.MemberID == memberID {
			out = append(out, task.clone())
		}
	}
	return out
}

// NextID is the id the next inserted task will receive.
func (s *Store) NextID() int {
	highest := 0
	for _, task := range s.tasks {
		if task.ID > highest {
			highest = task.ID
		}
	}
	return highest + 1
}

// Progress counts completed tasks across the whole board.
func (s *Store) Progress() Progress {
	p := Progress{Total: len(s.tasks)}
	for _, task := range s.tasks {
		if task.Done {
			p.Done++
		}
	}
	return p
}

// MemberProgress counts completed tasks in one member's column.
func (s *Store) MemberProgress(memberID string) Progress {
	var p Progress
	for _, task := range s.tasks {
		if task.MemberID != memberID {
			continue
		}
		p.Total++
		if task.Done {
			p.Done++
		}
	}
	return p
}

// Toggle sets the completion flag. It reports whether anything changed.
func (s *Store) Toggle(id int, next bool) bool {
	return s.replace(id, func(t *Task) {
		t.Done = next
	})
}

// UpdateTitle replaces the title text.
func (s *Store) UpdateTitle(id int, title string) bool {
	return s.replace(id, func(t *Task) {
		t.Title = title
	})
}

// UpdateNote replaces the note text, making the note present if it was not.
func (s *Store) UpdateNote(id int, note string) bool {
	return s.replace(id, func(t *Task) {
		t.Note = NoteOf(note)
	})
}

// EnsureNote opens an empty note on a task that has none. Existing note
// text is never touched.
func (s *Store) EnsureNote(id int) bool {
	return s.replace(id, func(t *Task) {
		if t.Note == nil {
			t.Note = NoteOf("")
		}
	})
}

// RemoveNote drops the note block.
func (s *Store) RemoveNote(id int) bool {
	return s.replace(id, func(t *Task) {
		t.Note = nil
	})
}

// Insert appends a blank task for memberID at the end of the collection
// and returns its id. Nothing happens when memberID is not editable.
func (s *Store) Insert(memberID string) (int, bool) {
	if !s.policy.Editable(memberID) {
		return 0, false
	}
	id := s.NextID()
	tasks := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(tasks, s.tasks)
	s.tasks = append(tasks, Task{ID: id, MemberID: memberID})
	return id, true
}

// Remove deletes an editable task. The final task on the board is kept.
func (s *Store) Remove(id int) bool {
	if len(s.tasks) <= 1 {
		return false
	}
	idx := s.indexOf(id)
	if idx < 0 || !s.policy.Editable(s.tasks[idx].MemberID) {
		return false
	}
	tasks := make([]Task, 0, len(s.tasks)-1)
	tasks = append(tasks, s.tasks[:idx]...)
	tasks = append(tasks, s.tasks[idx+1:]...)
	s.tasks = tasks
	return true
}

// replace applies edit to a copy of the matching task and swaps in a new
// collection when the result differs.
func (s *Store) replace(id int, edit func(*Task)) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	current := s.tasks[idx]
	if !s.policy.Editable(current.MemberID) {
		return false
	}
	next := current.clone()
	edit(&next)
	if next.equal(current) {
		return false
	}
	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	tasks[idx] = next
	s.tasks = tasks
	return true
}

func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
