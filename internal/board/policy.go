package board

// Policy decides whether the current viewer may change a member's tasks.
// Only the viewer's own column is editable.
type Policy struct {
	Viewer string
}

// Editable reports whether tasks owned by memberID may be mutated.
func (p Policy) Editable(memberID string) bool {
	return memberID == p.Viewer
}
