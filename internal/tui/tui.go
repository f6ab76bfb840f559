package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ihno999/avanced-ai-semester-project/internal/engine"
	"github.com/ihno999/avanced-ai-semester-project/internal/models"
	"github.com/ihno999/avanced-ai-semester-project/internal/spells"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateName
	stateDifficulty
	statePlaying
	stateAllocating
	stateError
)

var menuEntries = []string{"New Game", "Load Game", "Delete Save", "Quit"}

var difficulties = []models.Difficulty{models.Easy, models.Medium, models.Hard}

var allocStats = []string{"Strength", "Defense", "Intelligence", "Endurance", "Magic"}

type model struct {
	state    sessionState
	gen      engine.Generator
	savePath string
	session  *engine.Session

	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	cursor    int
	busy      bool

	playerName string
	gameLog    string
	menuNote   string
	err        error
	width      int
	height     int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFAF5F")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)
)

func NewModel(gen engine.Generator, savePath string) model {
	ti := textinput.New()
	ti.Placeholder = "Enter your character's name"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:     stateMenu,
		gen:       gen,
		savePath:  savePath,
		textInput: ti,
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type turnMsg struct {
	input  string
	result engine.TurnResult
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < m.cursorMax() {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.7)
		m.viewport.Height = msg.Height - 6
		if m.state == statePlaying || m.state == stateAllocating {
			m.viewport.SetContent(m.gameLog)
		}

	case turnMsg:
		m.busy = false
		m = m.applyTurn(msg)
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateName || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) cursorMax() int {
	switch m.state {
	case stateMenu:
		return len(menuEntries) - 1
	case stateDifficulty:
		return len(difficulties) - 1
	case stateAllocating:
		return len(allocStats) - 1
	}
	return 0
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch menuEntries[m.cursor] {
		case "New Game":
			m.state = stateName
			m.menuNote = ""
			m.textInput.Placeholder = "Enter your character's name"
			m.textInput.Reset()
			m.textInput.Focus()
		case "Load Game":
			return m.loadGame()
		case "Delete Save":
			if err := models.DeleteSave(m.savePath); err != nil {
				m.menuNote = err.Error()
			} else {
				m.menuNote = "Save file deleted."
			}
		case "Quit":
			return m, tea.Quit
		}
		return m, nil

	case stateName:
		name := strings.TrimSpace(m.textInput.Value())
		if name == "" {
			return m, nil
		}
		m.playerName = name
		m.cursor = 1 // Medium preselected
		m.state = stateDifficulty
		return m, nil

	case stateDifficulty:
		return m.startGame(difficulties[m.cursor])

	case statePlaying:
		if m.busy {
			// One turn at a time; input during generation is rejected.
			return m, nil
		}
		input := m.textInput.Value()
		if strings.TrimSpace(input) == "" {
			return m, nil
		}
		m.textInput.Reset()
		if input == "/quit" {
			return m, tea.Quit
		}
		if input == "/restart" {
			m.state = stateMenu
			m.cursor = 0
			m.gameLog = ""
			m.session = nil
			m.menuNote = ""
			return m, nil
		}

		m.appendLog(userStyle.Width(m.logWidth()).Render("> " + input))
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.playTurn(input))

	case stateAllocating:
		stat := strings.ToLower(allocStats[m.cursor])
		if err := m.session.State.AllocatePoint(stat); err != nil {
			if errors.Is(err, models.ErrNoStatPoints) {
				m.state = statePlaying
				return m, nil
			}
			m.err = err
			m.state = stateError
			return m, nil
		}
		m.appendLog(noteStyle.Render(fmt.Sprintf("Stat point spent on %s.", allocStats[m.cursor])))
		if m.session.State.Stats.UnassignedStatPoints == 0 {
			if err := m.session.State.Save(m.savePath); err != nil {
				m.appendLog(noteStyle.Render(fmt.Sprintf("Warning: could not save game: %v", err)))
			}
			m.state = statePlaying
		}
		return m, nil
	}
	return m, nil
}

func (m model) loadGame() (tea.Model, tea.Cmd) {
	state, err := models.Load(m.savePath)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSaveNotFound):
			m.menuNote = "No save file found!"
		case errors.Is(err, models.ErrCorruptSave):
			m.menuNote = "Save file is corrupt and could not be loaded."
		default:
			m.menuNote = err.Error()
		}
		return m, nil
	}
	m.playerName = state.PlayerName
	return m.enterGame(state, "Game loaded successfully!"), nil
}

func (m model) startGame(difficulty models.Difficulty) (tea.Model, tea.Cmd) {
	state := models.NewGame(m.playerName, difficulty)
	if err := state.Save(m.savePath); err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	next := m.enterGame(state, fmt.Sprintf("New game started on %s difficulty.", difficulty))
	return next, nil
}

func (m model) enterGame(state *models.GameState, note string) model {
	m.session = engine.NewSession(state, m.gen, m.savePath)
	m.gameLog = ""
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.logWidth(), max(m.height-6, 10))
	}
	m.appendLog(noteStyle.Render(note))
	m.appendLog(gameStyle.Width(m.logWidth()).Render(state.Context))
	m.textInput.Placeholder = fmt.Sprintf("What does %s do next?", state.PlayerName)
	m.textInput.Reset()
	m.textInput.Focus()
	if state.Stats.UnassignedStatPoints > 0 {
		m.cursor = 0
		m.state = stateAllocating
	} else {
		m.state = statePlaying
	}
	return m
}

func (m model) applyTurn(msg turnMsg) model {
	res := msg.result
	if res.AwaitingAllocation {
		m.appendLog(noteStyle.Render("You must assign your unspent stat point(s) before continuing."))
		m.cursor = 0
		m.state = stateAllocating
		return m
	}
	if res.Empty {
		return m
	}
	if res.StaminaSpent {
		m.appendLog(noteStyle.Render(fmt.Sprintf("You lose 10 stamina from %s.", msg.input)))
	}
	if res.SpellMessage != "" {
		m.appendLog(noteStyle.Render(res.SpellMessage))
	}
	m.appendLog(gameStyle.Width(m.logWidth()).Render(res.Story))
	if res.LeveledUp {
		m.appendLog(noteStyle.Render(fmt.Sprintf("Level Up! %s reached level %d!",
			m.session.State.PlayerName, m.session.State.Stats.Level)))
		m.cursor = 0
		m.state = stateAllocating
	}
	if res.SaveErr != nil {
		m.appendLog(noteStyle.Render(fmt.Sprintf("Warning: could not save game: %v", res.SaveErr)))
	}
	return m
}

func (m *model) appendLog(entry string) {
	if m.gameLog != "" {
		m.gameLog += "\n\n"
	}
	m.gameLog += entry
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	w := int(float64(m.width) * 0.7)
	if w <= 0 {
		w = 60
	}
	return w
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateMenu:
		s = titleStyle.Render("AI Dungeon Adventure") + "\n\n"
		for i, entry := range menuEntries {
			s += renderCursorLine(entry, i == m.cursor)
		}
		if m.menuNote != "" {
			s += "\n" + noteStyle.Render(m.menuNote) + "\n"
		}
		s += "\n" + helpStyle.Render("Up/Down to choose, Enter to confirm, Esc to quit.")

	case stateName:
		s = fmt.Sprintf("Who dares enter the dungeon?\n\n%s", m.textInput.View())

	case stateDifficulty:
		s = "Choose a difficulty:\n\n"
		for i, d := range difficulties {
			s += renderCursorLine(d.String(), i == m.cursor)
		}

	case statePlaying, stateAllocating:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		var bottom string
		switch {
		case m.state == stateAllocating:
			points := m.session.State.Stats.UnassignedStatPoints
			bottom = noteStyle.Render(fmt.Sprintf("You have %d unassigned stat point(s)! Choose a stat to upgrade:", points)) + "\n"
			for i, stat := range allocStats {
				bottom += renderCursorLine(stat, i == m.cursor)
			}
		case m.busy:
			bottom = m.spinner.View() + " The narrator is thinking..."
		default:
			bottom = m.textInput.View()
		}

		help := helpStyle.Render("Commands: /restart, /quit, or just type what you want to do.")
		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+bottom, "\n"+help)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func renderCursorLine(entry string, selected bool) string {
	if selected {
		return cursorStyle.Render("> "+entry) + "\n"
	}
	return "  " + entry + "\n"
}

func (m model) renderState() string {
	if m.session == nil {
		return ""
	}
	view := m.session.State.Render()

	content := titleStyle.Render("STATUS") + "\n"
	content += fmt.Sprintf("Health: %s\nStamina: %s\nMana: %s\n\n", view.HealthStr, view.StaminaStr, view.ManaStr)
	content += fmt.Sprintf("Strength: %d\nDefense: %d\nIntelligence: %d\nEndurance: %d\nMagic: %d\n\n",
		view.Strength, view.Defense, view.Intelligence, view.Endurance, view.Magic)
	content += fmt.Sprintf("Level: %d  XP: %s\nGold: %d\nDifficulty: %s\n\n", view.Level, view.XPStr, view.Gold, view.Difficulty)

	content += titleStyle.Render("INVENTORY") + "\n"
	if len(view.Inventory) == 0 {
		content += "(empty)\n"
	} else {
		for _, item := range view.Inventory {
			content += "- " + item + "\n"
		}
	}
	content += "\n" + titleStyle.Render("EQUIPPED GEAR") + "\n"
	for _, line := range view.Gear {
		content += fmt.Sprintf("- %s: %s\n", line.Slot, line.Item)
	}

	content += "\n" + titleStyle.Render("SPELLS") + "\n"
	available := spells.Available(view.Intelligence)
	if len(available) == 0 {
		content += "No spells available with the current intelligence.\n"
	} else {
		for _, spell := range available {
			content += "- " + spell + "\n"
		}
	}

	stateWidth := int(float64(m.width) * 0.28)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) playTurn(input string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return turnMsg{input: input, result: session.PlayTurn(context.Background(), input)}
	}
}

// Run starts the interactive game.
func Run(gen engine.Generator, savePath string) error {
	p := tea.NewProgram(NewModel(gen, savePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
