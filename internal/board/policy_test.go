package board

import "testing"

func TestPolicyEditable(t *testing.T) {
	tests := []struct {
		viewer, member string
		want           bool
	}{
		{viewer: "me", member: "me", want: true},
		{viewer: "me", member: "alice", want: false},
		{viewer: "me", member: "", want: false},
		{viewer: "", member: "me", want: false},
	}
	for _, tt := range tests {
		if got := (Policy{Viewer: tt.viewer}).Editable(tt.member); got != tt.want {
			t.Fatalf("Policy{%q}.Editable(%q) = %v, want %v", tt.viewer, tt.member, got, tt.want)
		}
	}
}
