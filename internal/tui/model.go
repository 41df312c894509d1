// Package tui is the full-screen terminal front end: an info panel, a guess
// field and a running log of attempts, driven by bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/i18n"
	"github.com/robalobadob/guessnum/internal/score"
)

// maxLogLines bounds the visible attempt log.
const maxLogLines = 8

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeWarn
	noticeError
	noticeWin
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model wrapping one caller-owned round.
type Model struct {
	g           *game.Game
	lang        language.Tag
	p           *message.Printer
	maxAttempts int

	input  textinput.Model
	log    []string
	notice string
	kind   noticeKind
	width  int
}

// New builds the model. maxAttempts feeds the score shown on a win.
func New(g *game.Game, lang language.Tag, maxAttempts int) Model {
	p := i18n.Printer(lang)

	ti := textinput.New()
	ti.Placeholder = p.Sprintf(i18n.MsgPrompt)
	ti.CharLimit = 24
	ti.Width = 24
	ti.Focus()

	return Model{
		g:           g,
		lang:        lang,
		p:           p,
		maxAttempts: maxAttempts,
		input:       ti,
		log:         []string{p.Sprintf(i18n.MsgNewGame)},
		width:       60,
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			return m.restart(), nil
		case "enter":
			return m.submit(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the field to the round. Blank input only warns; rejected
// guesses show the error but never reach the log.
func (m Model) submit() Model {
	raw := m.input.Value()
	if raw == "" {
		m.notice, m.kind = m.p.Sprintf(i18n.MsgPleaseEnter), noticeWarn
		return m
	}

	out := m.g.MakeGuess(raw)
	if !out.Valid {
		m.notice, m.kind = out.Message, noticeError
		return m
	}

	m.input.Reset()
	m.log = append(m.log, m.p.Sprintf(i18n.MsgAttemptLine, out.Attempts, raw, out.Message))
	m.notice, m.kind = "", noticeNone
	if out.Status == game.StatusWin {
		sc := score.Calculate(out.Attempts, m.maxAttempts)
		m.notice, m.kind = out.Message+"  "+m.p.Sprintf(i18n.MsgScore, sc), noticeWin
	}
	return m
}

func (m Model) restart() Model {
	m.g.Reset()
	m.input.Reset()
	m.log = []string{m.p.Sprintf(i18n.MsgNewGame)}
	m.notice, m.kind = "", noticeNone
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎯 " + m.p.Sprintf(i18n.MsgTitle)))
	b.WriteString("\n\n")

	st := m.g.State()
	status := m.p.Sprintf(i18n.MsgInProgress)
	if st.GameOver {
		status = m.p.Sprintf(i18n.MsgFinished)
	}
	b.WriteString(infoStyle.Render(strings.Join([]string{
		m.p.Sprintf(i18n.MsgRangeInfo, st.MinRange, st.MaxRange),
		m.p.Sprintf(i18n.MsgAttempts, st.Attempts),
		status,
	}, "\n")))
	b.WriteString("\n\n")

	b.WriteString(boxStyle.Width(m.boxWidth()).Render("> " + m.input.View()))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle(m.kind).Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := m.log
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	b.WriteString(boxStyle.Width(m.boxWidth()).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("enter: guess • ctrl+n: new game • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) boxWidth() int {
	if m.width < 24 {
		return 20
	}
	return m.width - 4
}

func noticeStyle(k noticeKind) lipgloss.Style {
	switch k {
	case noticeWarn:
		return warnStyle
	case noticeError:
		return errorStyle
	case noticeWin:
		return winStyle
	default:
		return lipgloss.NewStyle()
	}
}
