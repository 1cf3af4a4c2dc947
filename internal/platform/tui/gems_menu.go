package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemfall/internal/core"
)

// GemsMode represents the selected game mode.
type GemsMode int

const (
	GemsModeClassic GemsMode = iota
	GemsModeZen
)

// GameID returns the registry id for the mode.
func (m GemsMode) GameID() string {
	if m == GemsModeZen {
		return "gems_zen"
	}
	return "gems"
}

// GemsSelection holds the user's selection from the main menu.
type GemsSelection struct {
	Mode       GemsMode
	Difficulty string // "" = keep whatever the flags/config say
}

// gemsDifficulty pairs a preset name with a one-line description for the
// difficulty submenu.
type gemsDifficulty struct {
	name string
	desc string
}

var gemsDifficulties = []gemsDifficulty{
	{"easy", "5 gem colors, 40 moves, lazy combo timer"},
	{"normal", "6 gem colors, 30 moves"},
	{"hard", "7 gem colors on a 9x9 board, 20 moves"},
	{"fixed", "play the config file as-is"},
}

// Top-level menu entries, in cursor order.
const (
	menuEntryClassic = iota
	menuEntryZen
	menuEntryDifficulty
	menuEntryScores
	menuEntryCount
)

var menuEntries = [menuEntryCount]string{
	"Classic (limited moves)",
	"Zen (endless)",
	"Select Difficulty...",
	"High Scores",
}

// GemsModeModel is the Bubble Tea model for the main menu: game mode,
// difficulty, and scoreboard access.
type GemsModeModel struct {
	cursor          int
	diffCursor      int
	inDiffSelect    bool
	width           int
	height          int
	keyMapper       *KeyMapper
	selection       GemsSelection
	choosing        bool
	quitting        bool
	back            bool
	wantsScoreboard bool
}

// NewGemsModeModel creates a new main menu model.
func NewGemsModeModel(width, height int) GemsModeModel {
	return GemsModeModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m GemsModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GemsModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m GemsModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inDiffSelect {
		return m.handleDifficultyKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m GemsModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < menuEntryCount-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case menuEntryClassic:
			m.choosing = false
			m.selection = GemsSelection{Mode: GemsModeClassic}
			return m, tea.Quit
		case menuEntryZen:
			m.choosing = false
			m.selection = GemsSelection{Mode: GemsModeZen}
			return m, tea.Quit
		case menuEntryDifficulty:
			m.inDiffSelect = true
			m.diffCursor = 0
		case menuEntryScores:
			m.wantsScoreboard = true
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.wantsScoreboard = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m GemsModeModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(gemsDifficulties)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = GemsSelection{
			Mode:       GemsModeClassic,
			Difficulty: gemsDifficulties[m.diffCursor].name,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inDiffSelect = false
	}

	return m, nil
}

// View renders the menu or the difficulty submenu.
func (m GemsModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inDiffSelect {
		return m.viewDifficultySelect()
	}
	return m.viewModeSelect()
}

func (m GemsModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("G E M F A L L", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+entry, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))

	return b.String()
}

func (m GemsModeModel) viewDifficultySelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT DIFFICULTY", m.width))
	b.WriteString("\n\n")

	for i, d := range gemsDifficulties {
		cursor := "  "
		if i == m.diffCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-7s %s", cursor, d.name, d.desc)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m GemsModeModel) Selected() *GemsSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m GemsModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m GemsModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back at the top level.
func (m GemsModeModel) WantsBack() bool {
	return m.back
}

// WantsScoreboard returns true if user asked for the high score screen.
func (m GemsModeModel) WantsScoreboard() bool {
	return m.wantsScoreboard
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the outcome of one menu round.
type MenuResult struct {
	Selection       *GemsSelection
	WantsScoreboard bool
	Quit            bool
	Config          core.RuntimeConfig
}

// RunMenu runs the main menu as its own Bubble Tea program and reports
// what the user picked. The returned config carries any terminal resize
// that happened while the menu was up.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewGemsModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}

	m, ok := finalModel.(GemsModeModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	result := MenuResult{Config: cfg}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.WantsBack():
		result.Quit = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}

	return result, nil
}
