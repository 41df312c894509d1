// Package score turns a finished round into a 0-100 score and formats
// one-line statistics for display.
package score

import (
	"math"

	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/i18n"
)

// DefaultMaxAttempts is the attempt budget used when none is configured.
const DefaultMaxAttempts = 10

// Calculate scores a round won in attempts guesses.
// Every attempt past the first costs 100/maxAttempts points; the result is
// clamped at 0 and rounded half to even. attempts <= 0 scores 0.
func Calculate(attempts, maxAttempts int) int {
	if attempts <= 0 {
		return 0
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	s := 100 - float64(attempts-1)*(100/float64(maxAttempts))
	return int(math.RoundToEven(math.Max(0, s)))
}

// FormatStatistics renders the English statistics line for a guess.
func FormatStatistics(attempts, secret int, status game.Status) string {
	return FormatStatisticsIn(language.English, attempts, secret, status)
}

// FormatStatisticsIn renders the statistics line in tag's language.
// Unrecognised statuses yield a fixed "unknown status" line.
func FormatStatisticsIn(tag language.Tag, attempts, secret int, status game.Status) string {
	p := i18n.Printer(tag)
	switch status {
	case game.StatusWin:
		return p.Sprintf(i18n.MsgStatsWin, secret, attempts)
	case game.StatusTooLow:
		return p.Sprintf(i18n.MsgStatsTooLow, attempts)
	case game.StatusTooHigh:
		return p.Sprintf(i18n.MsgStatsTooHigh, attempts)
	default:
		return p.Sprintf(i18n.MsgStatsUnknown)
	}
}
