package config

import "gopkg.in/yaml.v3"

const defaultConfigYAML = `# focusboard configuration
version: 1
title: Tasks by member

# Only the viewer's column can be edited. Everyone else is read only.
viewer: me

members:
  - id: me
    name: Me
  - id: alice
    name: Alice
  - id: bob
    name: Bob

# Rows the board opens with. Edits made during a session are not saved.
tasks:
  - id: 1
    member: me
    title: Today's top priority
    note: Decide the goal and the deadline first
  - id: 2
    member: me
    title: One question to ask in the meeting
  - id: 3
    member: me
    title: Press Enter to add the next row
    note: Shift+Enter opens a note for details
  - id: 4
    member: alice
    title: Prepare the design review
    note: Share the latest mocks
  - id: 5
    member: alice
    title: Record a bug reproduction video
    done: true
  - id: 6
    member: bob
    title: Check the API responses

log:
  level: info
  format: text

# Extra key names for the title field shortcuts.
# keys:
#   insert: [ctrl+o]
#   note: [f2]

ui:
  column_width: 36
  show_log: false
`

// DefaultBoardConfig returns the demo board written by InitBoardDir.
func DefaultBoardConfig() BoardConfig {
	var bc BoardConfig
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &bc); err != nil {
		panic("config: default config does not parse: " + err.Error())
	}
	return bc
}
