package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/game"
)

func init() { color.NoColor = true }

func run(t *testing.T, g *game.Game, script string, lang language.Tag) string {
	t.Helper()
	var out bytes.Buffer
	s := New(g, strings.NewReader(script), &out, lang, 10)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func fixedRound(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(1, 100, append([]game.Option{game.WithSource(game.FixedSource(41))}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestPlayToWin(t *testing.T) {
	g := fixedRound(t)
	out := run(t, g, "abc\n200\n10\n90\n42\nquit\n", language.English)

	assert.Contains(t, out, "=== New game started ===")
	assert.Contains(t, out, "Range: 1 to 100")
	assert.Contains(t, out, "Error: enter a whole number")
	assert.Contains(t, out, "Error: the number must be between 1 and 100")
	assert.Contains(t, out, "Too low! Try again.")
	assert.Contains(t, out, "Too high! Try again.")
	assert.Contains(t, out, "Congratulations! You guessed the number 42 in 3 attempts!")
	assert.Contains(t, out, "Win! The number 42 was guessed in 3 attempts")
	assert.Contains(t, out, "Score: 80/100")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 3, g.Attempts())
}

func TestNewAndState(t *testing.T) {
	g := fixedRound(t)
	out := run(t, g, "42\nstate\nnew\nstate\n", language.English)

	assert.Contains(t, out, "Status: round over")
	assert.Contains(t, out, "Status: in progress")
	assert.Equal(t, 2, strings.Count(out, "Attempts: "))
	assert.False(t, g.Over())
	assert.Zero(t, g.Attempts())
}

func TestEOFEndsSession(t *testing.T) {
	g := fixedRound(t)
	out := run(t, g, "10", language.English)
	assert.Contains(t, out, "Too low!")
	assert.NotContains(t, out, "Goodbye!")
}

func TestWindowsLineEndings(t *testing.T) {
	g := fixedRound(t)
	out := run(t, g, "42\r\n", language.English)
	assert.Contains(t, out, "Congratulations!")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(fixedRound(t), strings.NewReader("42\n"), &bytes.Buffer{}, language.English, 10)
	require.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestRussianSession(t *testing.T) {
	g := fixedRound(t, game.WithLanguage(language.Russian))
	out := run(t, g, "1\n42\n", language.Russian)
	assert.Contains(t, out, "=== Новая игра началась ===")
	assert.Contains(t, out, "Слишком маленькое число!")
	assert.Contains(t, out, "Счет: 90/100")
}

func TestHelpFollowsLanguage(t *testing.T) {
	out := run(t, fixedRound(t), "help\n", language.English)
	assert.Contains(t, out, "new | reset   start a new round")
	assert.Contains(t, out, "help          list commands")

	ru := run(t, fixedRound(t, game.WithLanguage(language.Russian)), "help\n", language.Russian)
	assert.Contains(t, ru, "new | reset   начать новую игру")
	assert.Contains(t, ru, "help          список команд")
	assert.NotContains(t, ru, "start a new round")
}
