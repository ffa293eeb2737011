// Package console implements the interactive command console: a registry
// of typed commands sharing one analysis session, and a terminal UI that
// drives it.
package console

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/logze/v2"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
)

// CommandKind enumerates the built-in commands.
type CommandKind int

const (
	KindHelp CommandKind = iota
	KindAnalyze
	KindSummary
	KindLanguages
	KindActivity
	KindStreak
	KindRepos
	KindChart
	KindTheme
	KindHistory
	KindClear
)

var kindNames = map[CommandKind]string{
	KindHelp:      "help",
	KindAnalyze:   "analyze",
	KindSummary:   "summary",
	KindLanguages: "languages",
	KindActivity:  "activity",
	KindStreak:    "streak",
	KindRepos:     "repos",
	KindChart:     "chart",
	KindTheme:     "theme",
	KindHistory:   "history",
	KindClear:     "clear",
}

func (k CommandKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one console command. Execute returns the lines to print.
type Command interface {
	Kind() CommandKind
	Name() string
	Usage() string
	Description() string
	Execute(ctx context.Context, args []string, env *Env) ([]string, error)
}

// Env is the state commands share.
type Env struct {
	Analyzer analytics.Analyzer
	Session  *analytics.Session
	Themes   ThemeService
	History  *History
	Registry *Registry

	// Location buckets commit times for charts.
	Location *time.Location

	// Now is the clock used by the monthly trend chart.
	Now func() time.Time

	// Width is the terminal chart width.
	Width int

	// OnClear clears the screen in line mode.
	OnClear func()
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

// Registry dispatches input lines to commands by name.
type Registry struct {
	commands map[string]Command
	order    []Command
	log      logze.Logger
}

// NewRegistry creates a registry holding cmds.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{
		commands: make(map[string]Command, len(cmds)),
		log:      logze.With("component", "console"),
	}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in command.
func DefaultRegistry() *Registry {
	return NewRegistry(Builtins()...)
}

// Register adds c, replacing any command with the same name.
func (r *Registry) Register(c Command) {
	name := strings.ToLower(c.Name())
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, c)
	} else {
		for i, existing := range r.order {
			if strings.EqualFold(existing.Name(), name) {
				r.order[i] = c
			}
		}
	}
	r.commands[name] = c
}

// Lookup finds a command by name, ignoring case.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[strings.ToLower(name)]
	return c, ok
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.order...)
}

// Parse splits an input line into a command name and its arguments.
func Parse(line string) (name string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Dispatch runs the command named by the first word of line. Unknown
// commands produce a hint rather than an error.
func (r *Registry) Dispatch(ctx context.Context, line string, env *Env) ([]string, error) {
	name, args := Parse(line)
	if name == "" {
		return nil, nil
	}
	if env.Registry == nil {
		env.Registry = r
	}

	c, ok := r.Lookup(name)
	if !ok {
		return []string{
			"Command not found: " + name,
			`Type "help" to see available commands.`,
		}, nil
	}

	lines, err := c.Execute(ctx, args, env)
	if err != nil {
		r.log.Debug("command failed", "command", name, "error", err)
		return nil, err
	}
	return lines, nil
}
