package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/game"
)

func newModel(t *testing.T) Model {
	t.Helper()
	g, err := game.New(1, 100, game.WithSource(game.FixedSource(41)))
	require.NoError(t, err)
	return New(g, language.English, 10)
}

// send feeds msg through Update and returns the resulting model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func typeAndEnter(t *testing.T, m Model, s string) Model {
	t.Helper()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestInitialView(t *testing.T) {
	m := newModel(t)
	v := m.View()
	assert.Contains(t, v, "Guess the number")
	assert.Contains(t, v, "Range: 1 to 100")
	assert.Contains(t, v, "Attempts: 0")
	assert.Contains(t, v, "=== New game started ===")
}

func TestBlankInputWarns(t *testing.T) {
	m := send(t, newModel(t), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, noticeWarn, m.kind)
	assert.Equal(t, "Please enter a number", m.notice)
	assert.Len(t, m.log, 1)
}

func TestInvalidGuessIsNotLogged(t *testing.T) {
	m := typeAndEnter(t, newModel(t), "abc")
	assert.Equal(t, noticeError, m.kind)
	assert.Equal(t, "Error: enter a whole number", m.notice)
	assert.Len(t, m.log, 1)
	assert.Zero(t, m.g.Attempts())
	// the field keeps the text so it can be corrected
	assert.Equal(t, "abc", m.input.Value())
}

func TestValidGuessesAreLogged(t *testing.T) {
	m := typeAndEnter(t, newModel(t), "10")
	require.Len(t, m.log, 2)
	assert.Equal(t, "Attempt 1: 10 - Too low! Try again.", m.log[1])
	assert.Empty(t, m.input.Value())

	m = typeAndEnter(t, m, "42")
	require.Len(t, m.log, 3)
	assert.Equal(t, noticeWin, m.kind)
	assert.Contains(t, m.notice, "Congratulations!")
	assert.Contains(t, m.notice, "Score: 90/100")
	assert.Contains(t, m.View(), "Status: round over")
}

func TestRestart(t *testing.T) {
	m := typeAndEnter(t, newModel(t), "42")
	require.True(t, m.g.Over())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.False(t, m.g.Over())
	assert.Zero(t, m.g.Attempts())
	assert.Equal(t, []string{"=== New game started ==="}, m.log)
	assert.Empty(t, m.notice)
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := newModel(t).Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestLogIsTrimmedInView(t *testing.T) {
	g, err := game.New(1, 1000, game.WithSource(game.FixedSource(999)))
	require.NoError(t, err)
	m := New(g, language.English, 10)
	for i := 1; i <= 12; i++ {
		m = typeAndEnter(t, m, "1")
	}
	v := m.View()
	assert.NotContains(t, v, "Attempt 1: 1 -")
	assert.Contains(t, v, "Attempt 12: 1 -")
}

func TestWindowResize(t *testing.T) {
	m := send(t, newModel(t), tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
}

func TestRussianModel(t *testing.T) {
	g, err := game.New(1, 100, game.WithSource(game.FixedSource(41)), game.WithLanguage(language.Russian))
	require.NoError(t, err)
	m := typeAndEnter(t, New(g, language.Russian, 10), "5")
	assert.Equal(t, "Попытка 1: 5 - Слишком маленькое число! Попробуйте еще раз.", m.log[1])
}
