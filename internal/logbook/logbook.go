package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options configures a Logbook.
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is one of text, json, logfmt. Defaults to text.
	Format string
	// Session tags every entry; a random id is used when empty.
	Session string
}

// Logbook records one board session to a plain file so the activity panel
// and later readers can see what happened.
type Logbook struct {
	path    string
	session string
	mu      sync.Mutex
	file    *os.File
	logger  *log.Logger
}

// New opens (or creates) the journal at path.
func New(path string, opts Options) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open %s: %w", path, err)
	}
	session := strings.TrimSpace(opts.Session)
	if session == "" {
		session = uuid.NewString()
	}
	logger := log.NewWithOptions(file, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}).With("session", shortSession(session))
	return &Logbook{path: path, session: session, file: file, logger: logger}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Session returns the id attached to every entry.
func (l *Logbook) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}

// Debug appends a debug entry.
func (l *Logbook) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Debug(msg, keyvals...)
}

// Info appends an informational entry.
func (l *Logbook) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Info(msg, keyvals...)
}

// Warn appends a warning entry.
func (l *Logbook) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Warn(msg, keyvals...)
}

// Error appends an error entry.
func (l *Logbook) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Error(msg, keyvals...)
}

// Tail returns up to maxLines of the most recent entries plus the total
// number of lines in the file.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total
}

// Close releases the file handle.
func (l *Logbook) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a config level name to a log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a config format name to a log formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
