// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Status: directional hint for a valid guess (win/too_low/too_high).
//   - Outcome: result record of one guess.
//   - State: read-only snapshot of a round.
//   - Secret: the target number as seen from outside (hidden until won).

package game

import (
	"encoding/json"
	"strconv"
)

// Status is the hint returned for a valid guess.
// It is empty for rejected guesses.
type Status string

const (
	StatusNone    Status = ""
	StatusWin     Status = "win"
	StatusTooLow  Status = "too_low"
	StatusTooHigh Status = "too_high"
)

// Outcome is the result of a single MakeGuess call.
type Outcome struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Status   Status `json:"status,omitempty"`
	Attempts int    `json:"attempts"`
}

// State is a snapshot of a round. Secret stays hidden until GameOver.
type State struct {
	MinRange int    `json:"min_range"`
	MaxRange int    `json:"max_range"`
	Attempts int    `json:"attempts"`
	GameOver bool   `json:"game_over"`
	Secret   Secret `json:"secret_number"`
}

// hiddenSecret is how an unrevealed secret renders.
const hiddenSecret = "hidden"

// Secret is the target number, revealed only once a round is won.
type Secret struct {
	value    int
	revealed bool
}

// Value returns the number and true once revealed, and (0, false) before.
func (s Secret) Value() (int, bool) {
	if !s.revealed {
		return 0, false
	}
	return s.value, true
}

// Hidden reports whether the secret is still concealed.
func (s Secret) Hidden() bool { return !s.revealed }

func (s Secret) String() string {
	if !s.revealed {
		return hiddenSecret
	}
	return strconv.Itoa(s.value)
}

// MarshalJSON renders the number, or the string "hidden".
func (s Secret) MarshalJSON() ([]byte, error) {
	if !s.revealed {
		return json.Marshal(hiddenSecret)
	}
	return json.Marshal(s.value)
}
