// Command blokada is the interactive terminal game. It offers the three
// classic modes: two humans, human against the agent, and an
// agent-vs-agent showcase that advances one turn per tick.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blokada/agent"
	"blokada/game"
	"blokada/selfplay"
)

type screen int

const (
	screenMenu screen = iota
	screenSide
	screenGame
	screenOver
)

type mode int

const (
	modePvP mode = iota
	modePvAI
	modeAvA
)

type phase int

const (
	phaseMove phase = iota
	phaseBlock
)

// watchDelay paces the agent-vs-agent showcase so humans can follow it.
const watchDelay = 400 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	playerAStyl = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	playerBStyl = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	blockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// agentActionMsg carries one computed agent turn back into the UI loop.
type agentActionMsg struct {
	action agent.Action
}

type model struct {
	screen screen
	mode   mode
	aiSide game.Player

	st      *game.State
	phase   phase
	input   string
	errMsg  string
	lastAct string
	turns   int

	winner game.Player
	draw   bool
}

func newModel() model {
	return model{screen: screenMenu}
}

func (m model) Init() tea.Cmd { return nil }

// agentControls reports whether the side is played by the agent in the
// current mode.
func (m model) agentControls(p game.Player) bool {
	switch m.mode {
	case modeAvA:
		return true
	case modePvAI:
		return p == m.aiSide
	default:
		return false
	}
}

func computeAgent(st *game.State, p game.Player, delay time.Duration) tea.Cmd {
	sim := st.Clone()
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		return agentActionMsg{action: agent.ChooseAction(sim, p)}
	}
}

// beginTurn runs the start-of-turn termination check and, when the side
// to move is agent-controlled, kicks off its computation.
func (m model) beginTurn() (model, tea.Cmd) {
	if winner, over := m.st.Finished(); over {
		m.screen = screenOver
		m.winner = winner
		return m, nil
	}
	if m.turns >= selfplay.DefaultTurnCap {
		m.screen = screenOver
		m.draw = true
		return m, nil
	}
	if m.agentControls(m.st.Current) {
		delay := time.Duration(0)
		if m.mode == modeAvA {
			delay = watchDelay
		}
		return m, computeAgent(m.st, m.st.Current, delay)
	}
	m.phase = phaseMove
	return m, nil
}

func (m model) startGame(md mode, aiSide game.Player) (model, tea.Cmd) {
	m.mode = md
	m.aiSide = aiSide
	m.st = game.NewState()
	m.screen = screenGame
	m.phase = phaseMove
	m.input = ""
	m.errMsg = ""
	m.lastAct = ""
	m.turns = 0
	m.draw = false
	return m.beginTurn()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case agentActionMsg:
		return m.applyAgentAction(msg.action)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		switch key {
		case "1":
			return m.startGame(modePvP, game.PlayerA)
		case "2":
			m.screen = screenSide
			return m, nil
		case "3":
			return m.startGame(modeAvA, game.PlayerA)
		}
	case screenSide:
		switch key {
		case "1":
			return m.startGame(modePvAI, game.PlayerA)
		case "2":
			return m.startGame(modePvAI, game.PlayerB)
		}
	case screenGame:
		if m.agentControls(m.st.Current) {
			return m, nil // agent is thinking; ignore typing
		}
		return m.handleInputKey(key)
	case screenOver:
		if key == "enter" {
			fresh := newModel()
			return fresh, nil
		}
	}
	return m, nil
}

func (m model) handleInputKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.submitInput()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case " ", "space":
		m.input += " "
	default:
		if len(key) == 1 && (key[0] == ',' || (key[0] >= '0' && key[0] <= '9')) {
			m.input += key
		}
	}
	return m, nil
}

// parseCoord reads "row col" in 1-based coordinates, as the board is
// labeled on screen.
func parseCoord(raw string) (game.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	if len(fields) != 2 {
		return game.Point{}, fmt.Errorf("enter two numbers: row col (e.g. 3 4)")
	}
	r, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Point{}, fmt.Errorf("row is not a number")
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Point{}, fmt.Errorf("column is not a number")
	}
	if r < 1 || r > game.N || c < 1 || c > game.N {
		return game.Point{}, fmt.Errorf("coordinates must be 1..%d", game.N)
	}
	return game.Point{R: r - 1, C: c - 1}, nil
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	p, err := parseCoord(m.input)
	m.input = ""
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	player := m.st.Current
	switch m.phase {
	case phaseMove:
		if !m.st.Move(player, p) {
			m.errMsg = "illegal move: one king-step onto an empty square"
			return m, nil
		}
		m.errMsg = ""
		m.phase = phaseBlock
		return m, nil
	default:
		if !m.st.PlaceBlock(p) {
			m.errMsg = "cannot place a block there"
			return m, nil
		}
		m.errMsg = ""
		m.lastAct = fmt.Sprintf("%s moved and blocked (%d %d)", player, p.R+1, p.C+1)
		m.turns++
		m.st.SwitchTurn()
		return m.beginTurn()
	}
}

func (m model) applyAgentAction(a agent.Action) (tea.Model, tea.Cmd) {
	if m.screen != screenGame {
		return m, nil
	}
	player := m.st.Current
	// ChooseAction is only invoked on positions with a legal move, so
	// both applications succeed.
	m.st.Move(player, a.Move)
	m.st.PlaceBlock(a.Block)
	m.lastAct = fmt.Sprintf("agent %s: move (%d %d), block (%d %d)",
		player, a.Move.R+1, a.Move.C+1, a.Block.R+1, a.Block.C+1)
	m.turns++
	m.st.SwitchTurn()
	return m.beginTurn()
}

func renderBoard(st *game.State) string {
	var b strings.Builder
	b.WriteString("    ")
	for c := 1; c <= game.N; c++ {
		fmt.Fprintf(&b, "%2d", c)
	}
	b.WriteString("\n")
	for r := 0; r < game.N; r++ {
		fmt.Fprintf(&b, "%2d | ", r+1)
		for c := 0; c < game.N; c++ {
			var cell string
			switch st.Board[r][c] {
			case game.CellA:
				cell = playerAStyl.Render("A")
			case game.CellB:
				cell = playerBStyl.Render("B")
			case game.CellBlocked:
				cell = blockStyle.Render("#")
			default:
				cell = emptyStyle.Render(".")
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return titleStyle.Render("Blokada") + "\n\n" +
			"  1) Player vs Player\n" +
			"  2) Player vs Agent\n" +
			"  3) Agent vs Agent (watch)\n\n" +
			hintStyle.Render("Pick a mode, q to quit.") + "\n"
	case screenSide:
		return titleStyle.Render("Blokada") + "\n\n" +
			"Which side does the agent play?\n\n" +
			"  1) Agent plays A (moves first)\n" +
			"  2) Agent plays B\n\n" +
			hintStyle.Render("Pick a side, q to quit.") + "\n"
	case screenOver:
		s := titleStyle.Render("Blokada") + "\n\n" + renderBoard(m.st) + "\n"
		if m.draw {
			s += fmt.Sprintf("Turn cap reached after %d turns: technical draw.\n", m.turns)
		} else {
			s += fmt.Sprintf("Winner: %s\n", m.winner)
		}
		return s + "\n" + hintStyle.Render("Enter for the menu, q to quit.") + "\n"
	}

	s := titleStyle.Render("Blokada") + "\n\n" + renderBoard(m.st) + "\n"
	if m.lastAct != "" {
		s += m.lastAct + "\n"
	}
	player := m.st.Current
	if m.agentControls(player) {
		s += fmt.Sprintf("Agent %s is thinking...\n", player)
	} else {
		prompt := "move your pawn (row col): "
		if m.phase == phaseBlock {
			prompt = "place a block (row col): "
		}
		s += fmt.Sprintf("Player %s, %s%s\n", player, prompt, m.input)
	}
	if m.errMsg != "" {
		s += errStyle.Render(m.errMsg) + "\n"
	}
	return s + "\n" + hintStyle.Render("q to quit.") + "\n"
}

func main() {
	if _, err := tea.NewProgram(newModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blokada: %v\n", err)
		os.Exit(1)
	}
}
