package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/terminal"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// maxScrollback bounds the lines kept in the terminal view.
const maxScrollback = 500

// navigator records requests from the play and exit commands. The session
// acts on them after the terminal's update returns.
type navigator struct {
	play string
	exit bool
}

func (n *navigator) Play(id string) error {
	n.play = id
	return nil
}

func (n *navigator) Exit() { n.exit = true }

// TerminalModel is the command line: a prompt, a scrolling log and the
// interpreter behind them.
type TerminalModel struct {
	interp  *terminal.Interpreter
	nav     *navigator
	palette func() theme.Palette
	prompt  string

	input    textinput.Model
	view     viewport.Model
	lines    []string
	histPos  int // -1 when not browsing history
	width    int
	height   int
	quitting bool
}

// NewTerminalModel builds the terminal around interp. The interpreter's
// context gets this model's navigator.
func NewTerminalModel(interp *terminal.Interpreter, prompt string, palette func() theme.Palette, width, height int) TerminalModel {
	nav := &navigator{}
	interp.Context().Nav = nav
	if prompt == "" {
		prompt = "guest@termfolio:~$"
	}

	ti := textinput.New()
	ti.Prompt = prompt + " "
	ti.Placeholder = "type 'help'"
	ti.CharLimit = 256
	ti.Focus()

	m := TerminalModel{
		interp:  interp,
		nav:     nav,
		palette: palette,
		prompt:  prompt,
		input:   ti,
		view:    viewport.New(width, max(height-1, 1)),
		histPos: -1,
		width:   width,
		height:  height,
	}
	m.print(m.interp.Execute("banner"))
	m.print(terminal.Result{Kind: terminal.ResultText, Text: "Type 'help' to see what you can do."})
	return m
}

// Init starts the cursor blinking.
func (m TerminalModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the terminal.
func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-1, 1)
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "up":
			m.browse(-1)
			return m, nil
		case "down":
			m.browse(1)
			return m, nil
		case "tab":
			m.complete()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m TerminalModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	m.histPos = -1

	m.lines = append(m.lines, m.styled(core.ColorAccent, m.prompt)+" "+line)
	res := m.interp.Execute(line)
	if res.Clear {
		m.lines = nil
	}
	m.print(res)

	if m.nav.exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// browse walks the command history with the arrow keys.
func (m *TerminalModel) browse(step int) {
	hist := m.interp.History()
	if len(hist) == 0 {
		return
	}
	pos := m.histPos
	if pos < 0 {
		pos = len(hist)
	}
	pos += step
	if pos >= len(hist) {
		m.histPos = -1
		m.input.SetValue("")
		return
	}
	pos = max(pos, 0)
	m.histPos = pos
	m.input.SetValue(hist[pos])
	m.input.CursorEnd()
}

func (m *TerminalModel) complete() {
	val := strings.TrimLeft(m.input.Value(), " ")
	if val == "" || strings.Contains(val, " ") {
		return
	}
	matches := m.interp.Complete(val)
	if len(matches) == 1 {
		m.input.SetValue(matches[0] + " ")
		m.input.CursorEnd()
	}
}

// print appends a result to the scrollback, styled by kind.
func (m *TerminalModel) print(res terminal.Result) {
	token := core.ColorText
	prefix := ""
	switch res.Kind {
	case terminal.ResultError:
		token = core.ColorDanger
	case terminal.ResultSuccess:
		token = core.ColorSuccess
	case terminal.ResultASCII:
		token = core.ColorAccentAlt
	case terminal.ResultList:
		prefix = "  • "
	}
	for _, l := range res.Lines() {
		m.lines = append(m.lines, m.styled(token, prefix+l))
	}
	if len(m.lines) > maxScrollback {
		m.lines = m.lines[len(m.lines)-maxScrollback:]
	}
	m.refresh()
}

func (m *TerminalModel) refresh() {
	m.view.SetContent(strings.Join(m.lines, "\n"))
	m.view.GotoBottom()
}

func (m TerminalModel) styled(token core.Color, s string) string {
	return m.palette().Style(token).Render(s)
}

// View renders the scrollback above the prompt.
func (m TerminalModel) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.view.View(), m.input.View())
}

// TakePlay returns and clears a pending play request.
func (m *TerminalModel) TakePlay() string {
	id := m.nav.play
	m.nav.play = ""
	return id
}

// IsQuitting reports whether the user ran exit or pressed ctrl+c.
func (m TerminalModel) IsQuitting() bool { return m.quitting }

// Lines returns the scrollback.
func (m TerminalModel) Lines() []string { return m.lines }
