// internal/config/config.go
//
// This package handles the board configuration and the .focusboard directory.
// The config describes who sits on the board, who is looking at it, and the
// rows the board opens with. Nothing the user types is ever written back.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/focusboard/internal/board"
)

const (
	// BoardDir is the directory created in the project root on first run.
	BoardDir = ".focusboard"

	defaultConfigName  = "config.yaml"
	defaultColumnWidth = 36
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// MemberConfig declares one column of the board.
type MemberConfig struct {
	ID   string `yaml:"id" toml:"id" json:"id"`
	Name string `yaml:"name" toml:"name" json:"name"`
}

// TaskConfig declares one row the board starts with.
type TaskConfig struct {
	ID     int     `yaml:"id" toml:"id" json:"id"`
	Member string  `yaml:"member" toml:"member" json:"member"`
	Title  string  `yaml:"title" toml:"title" json:"title"`
	Note   *string `yaml:"note,omitempty" toml:"note,omitempty" json:"note,omitempty"`
	Done   bool    `yaml:"done,omitempty" toml:"done,omitempty" json:"done"`
}

// LogConfig controls the session journal.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// KeyConfig adds key names on top of the built-in title-field shortcuts.
type KeyConfig struct {
	Insert []string `yaml:"insert,omitempty" toml:"insert,omitempty" json:"insert,omitempty"`
	Note   []string `yaml:"note,omitempty" toml:"note,omitempty" json:"note,omitempty"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	ColumnWidth int  `yaml:"column_width" toml:"column_width" json:"column_width"`
	ShowLog     bool `yaml:"show_log" toml:"show_log" json:"show_log"`
}

// BoardConfig models .focusboard/config.yaml (or a TOML equivalent).
type BoardConfig struct {
	Version int            `yaml:"version" toml:"version" json:"version"`
	Title   string         `yaml:"title" toml:"title" json:"title"`
	Viewer  string         `yaml:"viewer" toml:"viewer" json:"viewer"`
	Members []MemberConfig `yaml:"members" toml:"members" json:"members,omitempty"`
	Tasks   []TaskConfig   `yaml:"tasks" toml:"tasks" json:"tasks,omitempty"`
	Log     LogConfig      `yaml:"log" toml:"log" json:"log"`
	Keys    KeyConfig      `yaml:"keys,omitempty" toml:"keys,omitempty" json:"keys"`
	UI      UIConfig       `yaml:"ui" toml:"ui" json:"ui"`
}

// Config holds the runtime configuration for a board session.
type Config struct {
	// ProjectDir is the directory focusboard was started from
	ProjectDir string

	// BoardProjectDir is ProjectDir/.focusboard
	BoardProjectDir string

	// Path is the config file that was loaded, empty when defaults were used
	Path string

	Board BoardConfig
}

// InitBoardDir creates the .focusboard directory structure:
//
// .focusboard/
// ├── config.yaml   <- board definition, written once with the demo board
// └── logs/         <- session journals
func InitBoardDir(projectDir string) error {
	boardDir := filepath.Join(projectDir, BoardDir)
	if err := os.MkdirAll(filepath.Join(boardDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure board dir: %w", err)
	}
	return ensureDefaultConfig(filepath.Join(boardDir, defaultConfigName))
}

// Load reads the board config. An empty path means
// .focusboard/config.yaml; if that file does not exist the built-in demo
// board is used. An explicit path must exist.
func Load(projectDir, path string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		BoardProjectDir: filepath.Join(projectDir, BoardDir),
	}
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = cfg.DefaultConfigPath()
	} else {
		path = resolvePath(projectDir, path)
	}

	parsed, err := readBoardConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			parsed = DefaultBoardConfig()
			path = ""
		} else {
			return nil, err
		}
	}

	if err := parsed.prepare(); err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.Board = parsed
	return cfg, nil
}

// DefaultConfigPath returns the on-disk location of the default config file.
func (c *Config) DefaultConfigPath() string {
	return filepath.Join(c.BoardProjectDir, defaultConfigName)
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.BoardProjectDir, "logs")
}

// JournalPath returns the session journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "focusboard.log")
}

// SetViewer overrides the configured viewer. The id must name a member.
func (c *Config) SetViewer(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("config: viewer id is required")
	}
	if !c.Board.hasMember(id) {
		return fmt.Errorf("config: viewer %q is not a board member", id)
	}
	c.Board.Viewer = id
	return nil
}

// SetLogLevel overrides the journal level.
func (c *Config) SetLogLevel(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if !validLogLevel(level) {
		return fmt.Errorf("config: unknown log level %q", level)
	}
	c.Board.Log.Level = level
	return nil
}

// Members converts the roster to board members, in config order.
func (c *Config) Members() []board.Member {
	out := make([]board.Member, 0, len(c.Board.Members))
	for _, m := range c.Board.Members {
		out = append(out, board.Member{ID: m.ID, Name: m.Name})
	}
	return out
}

// SeedTasks converts the configured rows to board tasks.
func (c *Config) SeedTasks() []board.Task {
	out := make([]board.Task, 0, len(c.Board.Tasks))
	for _, t := range c.Board.Tasks {
		task := board.Task{
			ID:       t.ID,
			MemberID: t.Member,
			Title:    t.Title,
			Done:     t.Done,
		}
		if t.Note != nil {
			task.Note = board.NoteOf(*t.Note)
		}
		out = append(out, task)
	}
	return out
}

// Policy returns the editability policy for the configured viewer.
func (c *Config) Policy() board.Policy {
	return board.Policy{Viewer: c.Board.Viewer}
}

// KeyMap returns the title-field shortcuts including configured extras.
func (c *Config) KeyMap() board.KeyMap {
	return board.DefaultKeyMap().Merge(c.Board.Keys.Insert, c.Board.Keys.Note)
}

func readBoardConfig(path string) (BoardConfig, error) {
	var parsed BoardConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return parsed, fmt.Errorf("config: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &parsed); err != nil {
			return parsed, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return parsed, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return parsed, nil
}

func (bc *BoardConfig) prepare() error {
	bc.applyDefaults()
	bc.normalize()
	if err := validateSchema(*bc); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := bc.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (bc *BoardConfig) applyDefaults() {
	if bc.Version == 0 {
		bc.Version = 1
	}
	if strings.TrimSpace(bc.Title) == "" {
		bc.Title = "Tasks by member"
	}
	if strings.TrimSpace(bc.Log.Level) == "" {
		bc.Log.Level = defaultLogLevel
	}
	if strings.TrimSpace(bc.Log.Format) == "" {
		bc.Log.Format = defaultLogFormat
	}
	if bc.UI.ColumnWidth == 0 {
		bc.UI.ColumnWidth = defaultColumnWidth
	}
}

func (bc *BoardConfig) normalize() {
	bc.Title = strings.TrimSpace(bc.Title)
	bc.Viewer = strings.TrimSpace(bc.Viewer)
	for i := range bc.Members {
		bc.Members[i].ID = strings.TrimSpace(bc.Members[i].ID)
		bc.Members[i].Name = strings.TrimSpace(bc.Members[i].Name)
		if bc.Members[i].Name == "" {
			bc.Members[i].Name = bc.Members[i].ID
		}
	}
	for i := range bc.Tasks {
		bc.Tasks[i].Member = strings.TrimSpace(bc.Tasks[i].Member)
	}
	bc.Log.Level = strings.ToLower(strings.TrimSpace(bc.Log.Level))
	bc.Log.Format = strings.ToLower(strings.TrimSpace(bc.Log.Format))
	if bc.Viewer == "" && len(bc.Members) > 0 {
		bc.Viewer = bc.Members[0].ID
	}
}

func (bc *BoardConfig) validate() error {
	if bc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if len(bc.Members) == 0 {
		return fmt.Errorf("at least one member is required")
	}
	seenMembers := map[string]struct{}{}
	for i, m := range bc.Members {
		if m.ID == "" {
			return fmt.Errorf("members[%d]: id is required", i)
		}
		if _, ok := seenMembers[m.ID]; ok {
			return fmt.Errorf("members[%d]: duplicate id %q", i, m.ID)
		}
		seenMembers[m.ID] = struct{}{}
	}
	if !bc.hasMember(bc.Viewer) {
		return fmt.Errorf("viewer %q is not a board member", bc.Viewer)
	}
	seenTasks := map[int]struct{}{}
	for i, t := range bc.Tasks {
		if t.ID < 1 {
			return fmt.Errorf("tasks[%d]: id must be >= 1", i)
		}
		if _, ok := seenTasks[t.ID]; ok {
			return fmt.Errorf("tasks[%d]: duplicate id %d", i, t.ID)
		}
		seenTasks[t.ID] = struct{}{}
		if !bc.hasMember(t.Member) {
			return fmt.Errorf("tasks[%d]: unknown member %q", i, t.Member)
		}
	}
	if !validLogLevel(bc.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

func (bc *BoardConfig) hasMember(id string) bool {
	for _, m := range bc.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default config: %w", err)
	}
	return nil
}
