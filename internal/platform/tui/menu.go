package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// presets is the difficulty cycle shown in the menu.
var presets = []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Preset config.DifficultyPreset
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	preset  int // index into presets
	width   int
	height  int
	palette func() theme.Palette

	quitting       bool
	back           bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model over the registered games.
func NewMenuModel(preset config.DifficultyPreset, palette func() theme.Palette, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	m := MenuModel{
		items:   items,
		preset:  1,
		palette: palette,
		width:   width,
		height:  height,
	}
	for i, p := range presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.preset = (m.preset + len(presets) - 1) % len(presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(presets)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			selected.Preset = presets[m.preset]
			m.selected = &selected
		}

	case MenuActionScores:
		m.openScoreboard = true

	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	p := m.palette()
	title := p.Style(core.ColorAccent).Bold(true)
	muted := p.Style(core.ColorMuted)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("  A R C A D E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(title.Render(centerText("> "+item.Title, m.width)))
		} else {
			b.WriteString(centerText("  "+item.Title, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", presets[m.preset]), m.width))
	b.WriteString("\n\n")
	controls := "↑/↓ navigate  ←/→ difficulty  enter play  tab scores  esc terminal  q quit"
	b.WriteString(muted.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem { return m.selected }

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// IsGoingBack returns true if user asked for the terminal.
func (m MenuModel) IsGoingBack() bool { return m.back }

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }
