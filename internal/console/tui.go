package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ishanpathak1/ghanalytics/internal/theme"
)

// Greeting is printed when the console starts.
var Greeting = []string{
	"Welcome to the GitHub analytics console!",
	`Type "help" to see available commands.`,
	"",
}

// maxOutput bounds the scrollback kept in memory.
const maxOutput = 1000

// commandResultMsg carries the output of a finished command.
type commandResultMsg struct {
	kind  CommandKind
	lines []string
	err   error
}

type submitMsg struct {
	line string
}

// Submit returns a message that runs line as if it were typed.
func Submit(line string) tea.Msg {
	return submitMsg{line: line}
}

// Model is the Bubble Tea model of the console.
type Model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	registry *Registry
	env      *Env

	input   textinput.Model
	spinner spinner.Model
	output  []string
	busy    bool
	running string

	width  int
	height int
}

// NewModel creates a console model dispatching to registry.
func NewModel(ctx context.Context, registry *Registry, env *Env) *Model {
	ctx, cancel := context.WithCancel(ctx)

	if env.History == nil {
		env.History = NewHistory()
	}
	if env.Registry == nil {
		env.Registry = registry
	}

	input := textinput.New()
	input.Prompt = "$ "
	input.Placeholder = "help"
	input.CharLimit = 256
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:      ctx,
		cancel:   cancel,
		registry: registry,
		env:      env,
		input:    input,
		spinner:  sp,
		output:   append([]string(nil), Greeting...),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case submitMsg:
		m.input.SetValue(msg.line)
		return m, m.submit()

	case commandResultMsg:
		m.busy = false
		m.running = ""
		m.handleResult(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancel()
		if m.env.Session != nil {
			m.env.Session.Cancel()
		}
		return tea.Quit

	case tea.KeyUp:
		if line, ok := m.env.History.Prev(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return nil

	case tea.KeyDown:
		if line, ok := m.env.History.Next(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return nil

	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return nil
	}
	m.input.SetValue("")
	m.env.History.Add(line)
	m.appendOutput("> " + line)

	name, _ := Parse(line)
	c, ok := m.registry.Lookup(name)
	kind := KindHelp
	if ok {
		kind = c.Kind()
	}

	if kind == KindAnalyze {
		// A new analyze replaces an in-flight one; the session discards
		// the stale result when it arrives.
		m.busy = true
		m.running = line
		return tea.Batch(m.spinner.Tick, m.dispatch(kind, line))
	}
	return m.dispatch(kind, line)
}

func (m *Model) dispatch(kind CommandKind, line string) tea.Cmd {
	ctx, registry, env := m.ctx, m.registry, m.env
	return func() tea.Msg {
		lines, err := registry.Dispatch(ctx, line, env)
		return commandResultMsg{kind: kind, lines: lines, err: err}
	}
}

func (m *Model) handleResult(msg commandResultMsg) {
	if msg.kind == KindClear && msg.err == nil {
		m.output = nil
		return
	}
	if msg.err != nil {
		m.appendOutput("Error: "+msg.err.Error(), "")
		return
	}
	if len(msg.lines) > 0 {
		m.appendOutput(msg.lines...)
		m.appendOutput("")
	}
}

func (m *Model) appendOutput(lines ...string) {
	m.output = append(m.output, lines...)
	if over := len(m.output) - maxOutput; over > 0 {
		m.output = append([]string(nil), m.output[over:]...)
	}
}

// Output returns the scrollback lines.
func (m *Model) Output() []string {
	return append([]string(nil), m.output...)
}

// View implements tea.Model.
func (m *Model) View() string {
	current := theme.Default
	if m.env.Themes != nil {
		current = m.env.Themes.Theme()
	}
	styles := current.Styles()

	header := styles.Title.Render("ghanalytics ~ console")

	lines := m.output
	if m.height > 0 {
		visible := m.height - 4
		if visible < 1 {
			visible = 1
		}
		if len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
	}

	var footer string
	if m.busy {
		footer = m.spinner.View() + " " + styles.Muted.Render("Running "+m.running+"...")
	} else {
		m.input.PromptStyle = styles.Prompt
		footer = m.input.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		styles.Value.Render(strings.Join(lines, "\n")),
		footer,
	)
}
