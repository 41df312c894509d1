// internal/game/engine.go
//
// Core game engine for a single guessing round.
// Responsibilities:
//   - Hold the round state (range, secret, attempt counter, over flag).
//   - Draw the secret uniformly from the inclusive range on New and Reset.
//   - Validate and apply guesses, answering with a directional hint.
//   - Track state transitions: active → over (on a correct guess) → active (on Reset).
//
// Notes:
//   - Input checks are delegated to the validate package.
//   - A Game is owned by one caller and is not safe for concurrent use.
//   - Guesses after a win are rejected and leave the state untouched.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/guessnum/internal/i18n"
	"github.com/robalobadob/guessnum/internal/validate"
)

const (
	DefaultMin = 1
	DefaultMax = 100
)

// ErrInvalidRange is returned by New when min >= max or the span cannot be drawn from.
var ErrInvalidRange = errors.New("invalid range")

// Game holds the state of one round.
type Game struct {
	id       string
	min, max int
	secret   int
	attempts int
	over     bool

	src Source
	val *validate.Validator
	p   *message.Printer
}

// Option customises a Game at construction.
type Option func(*Game)

// WithSource sets the secret source (default: crypto/rand).
func WithSource(src Source) Option {
	return func(g *Game) {
		if src != nil {
			g.src = src
		}
	}
}

// WithLanguage selects the language of outcome messages.
func WithLanguage(tag language.Tag) Option {
	return func(g *Game) {
		g.val = validate.New(tag)
		g.p = i18n.Printer(tag)
	}
}

// WithID overrides the generated round ID.
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// New constructs a round over [min, max] and draws its first secret.
func New(min, max int, opts ...Option) (*Game, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: min %d must be less than max %d", ErrInvalidRange, min, max)
	}
	if span(min, max) == 0 {
		return nil, fmt.Errorf("%w: [%d, %d] spans every int", ErrInvalidRange, min, max)
	}
	g := &Game{
		id:  uuid.NewString(),
		min: min,
		max: max,
		src: cryptoSource{},
	}
	WithLanguage(language.English)(g)
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g, nil
}

// NewDefault constructs a round over [DefaultMin, DefaultMax].
func NewDefault(opts ...Option) *Game {
	g, err := New(DefaultMin, DefaultMax, opts...)
	if err != nil {
		panic(err) // defaults are a valid range
	}
	return g
}

// Reset starts a new round over the same range, abandoning the current secret.
func (g *Game) Reset() {
	g.secret = int(uint64(g.min) + g.src.Uint64N(span(g.min, g.max)))
	g.attempts = 0
	g.over = false
}

// MakeGuess validates raw and, if valid, counts it and compares it to the secret.
//
// Rejected input (including any guess after the round is won) returns
// Valid=false and leaves attempts and the over flag untouched.
func (g *Game) MakeGuess(raw string) Outcome {
	if g.over {
		return Outcome{Message: g.p.Sprintf(i18n.MsgRoundOver), Attempts: g.attempts}
	}

	res := g.val.Input(raw, g.min, g.max)
	if !res.Valid {
		return Outcome{Message: res.Message, Attempts: g.attempts}
	}

	g.attempts++
	switch {
	case res.Value == g.secret:
		g.over = true
		return Outcome{
			Valid:    true,
			Message:  g.p.Sprintf(i18n.MsgWin, g.secret, g.attempts),
			Status:   StatusWin,
			Attempts: g.attempts,
		}
	case res.Value < g.secret:
		return Outcome{Valid: true, Message: g.p.Sprintf(i18n.MsgTooLow), Status: StatusTooLow, Attempts: g.attempts}
	default:
		return Outcome{Valid: true, Message: g.p.Sprintf(i18n.MsgTooHigh), Status: StatusTooHigh, Attempts: g.attempts}
	}
}

// State returns a snapshot of the round. The secret is copied in only once
// the round is over.
func (g *Game) State() State {
	st := State{
		MinRange: g.min,
		MaxRange: g.max,
		Attempts: g.attempts,
		GameOver: g.over,
	}
	if g.over {
		st.Secret = Secret{value: g.secret, revealed: true}
	}
	return st
}

// ID returns the round identifier.
func (g *Game) ID() string { return g.id }

// Over reports whether the current round has been won.
func (g *Game) Over() bool { return g.over }

// Attempts returns the number of valid guesses since the last reset.
func (g *Game) Attempts() int { return g.attempts }

// Range returns the inclusive bounds of the round.
func (g *Game) Range() (min, max int) { return g.min, g.max }

// span is the number of integers in [min, max], or 0 if that overflows uint64.
func span(min, max int) uint64 {
	return uint64(max) - uint64(min) + 1
}
