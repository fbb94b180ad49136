// cmd/focusboard/main.go
//
// Entry point for the focusboard CLI.
//
// Flow:
// 1. Resolve the project directory and load .focusboard/config.yaml
// 2. Apply flag overrides (viewer, log level)
// 3. Open the session journal and launch the TUI

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/focusboard/internal/board"
	"github.com/kingrea/focusboard/internal/config"
	"github.com/kingrea/focusboard/internal/logbook"
	"github.com/kingrea/focusboard/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

type rootFlags struct {
	dir         string
	configPath  string
	viewer      string
	logLevel    string
	noAltScreen bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "focusboard",
		Short:         "A keyboard-driven task board, one column per member",
		Version:       version,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(flags)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.dir, "dir", "", "Project directory (defaults to the working directory)")
	pf.StringVar(&flags.configPath, "config", "", "Board config file (.yaml or .toml)")
	pf.StringVar(&flags.viewer, "viewer", "", "Member id whose column is editable")
	pf.StringVar(&flags.logLevel, "log-level", "", "Journal level: debug, info, warn, error")
	root.Flags().BoolVar(&flags.noAltScreen, "no-alt-screen", false, "Render inline instead of the alternate screen")

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create .focusboard/ with the demo board config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), flags)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the board config and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), flags)
		},
	})
	return root
}

func projectDir(flags rootFlags) (string, error) {
	if flags.dir != "" {
		return flags.dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", codeError(1, "getting working directory: %v", err)
	}
	return cwd, nil
}

// loadConfig reads the board config and applies flag overrides.
func loadConfig(flags rootFlags) (*config.Config, error) {
	dir, err := projectDir(flags)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir, flags.configPath)
	if err != nil {
		return nil, codeError(2, "%v", err)
	}
	if flags.viewer != "" {
		if err := cfg.SetViewer(flags.viewer); err != nil {
			return nil, codeError(2, "%v", err)
		}
	}
	if flags.logLevel != "" {
		if err := cfg.SetLogLevel(flags.logLevel); err != nil {
			return nil, codeError(2, "%v", err)
		}
	}
	return cfg, nil
}

func runBoard(flags rootFlags) error {
	dir, err := projectDir(flags)
	if err != nil {
		return err
	}
	if err := config.InitBoardDir(dir); err != nil {
		return codeError(1, "initializing .focusboard directory: %v", err)
	}
	flags.dir = dir
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	book, err := logbook.New(cfg.JournalPath(), logbook.Options{
		Level:  cfg.Board.Log.Level,
		Format: cfg.Board.Log.Format,
	})
	if err != nil {
		return codeError(1, "opening journal: %v", err)
	}
	defer book.Close()

	opts := []tea.ProgramOption{}
	if !flags.noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.NewApp(cfg, tui.WithLogbook(book)), opts...)
	if _, err := p.Run(); err != nil {
		book.Error("program exited with error", "err", err)
		return codeError(1, "running TUI: %v", err)
	}
	return nil
}

func runInit(out io.Writer, flags rootFlags) error {
	dir, err := projectDir(flags)
	if err != nil {
		return err
	}
	if err := config.InitBoardDir(dir); err != nil {
		return codeError(1, "initializing .focusboard directory: %v", err)
	}
	cfg, err := config.Load(dir, "")
	if err != nil {
		return codeError(2, "%v", err)
	}
	fmt.Fprintf(out, "board config: %s\n", cfg.Path)
	return nil
}

func runCheck(out io.Writer, flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	source := cfg.Path
	if source == "" {
		source = "built-in demo board"
	}
	fmt.Fprintf(out, "config:  %s\n", source)
	fmt.Fprintf(out, "title:   %s\n", cfg.Board.Title)
	fmt.Fprintf(out, "viewer:  %s\n", cfg.Board.Viewer)

	store := board.NewStore(cfg.Policy(), cfg.SeedTasks())
	fmt.Fprintf(out, "members: %d\n", len(cfg.Board.Members))
	for _, m := range cfg.Members() {
		fmt.Fprintf(out, "  %-12s %s\n", m.Name, store.MemberProgress(m.ID))
	}
	fmt.Fprintf(out, "tasks:   %s\n", store.Progress())
	return nil
}
