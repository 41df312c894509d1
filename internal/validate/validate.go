// internal/validate/validate.go
//
// Input validation for the guessing game.
// Responsibilities:
//   - Check a raw guess string against the round's inclusive range.
//   - Check a proposed range (two raw strings) for reconfiguration.
//
// Both checks are pure: they never mutate anything and always return a
// result record, never an error. Messages come from the i18n catalogue in
// the validator's language.

package validate

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/guessnum/internal/i18n"
)

// MinSpan is the smallest allowed difference between max and min.
const MinSpan = 10

// Reason discriminates validation results.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonEmpty
	ReasonNotInteger
	ReasonOutOfRange
	ReasonRangeIncomplete
	ReasonRangeNotInteger
	ReasonRangeOrder
	ReasonRangeTooNarrow
)

var reasonNames = map[Reason]string{
	ReasonOK:              "ok",
	ReasonEmpty:           "empty",
	ReasonNotInteger:      "not_integer",
	ReasonOutOfRange:      "out_of_range",
	ReasonRangeIncomplete: "range_incomplete",
	ReasonRangeNotInteger: "range_not_integer",
	ReasonRangeOrder:      "range_order",
	ReasonRangeTooNarrow:  "range_too_narrow",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Result is the outcome of checking one guess.
// Value is the parsed guess and is only meaningful when Valid.
type Result struct {
	Valid   bool
	Reason  Reason
	Message string
	Value   int
}

// RangeResult is the outcome of checking a proposed range.
// Min and Max are only meaningful when Valid.
type RangeResult struct {
	Valid   bool
	Reason  Reason
	Message string
	Min     int
	Max     int
}

// Validator renders its messages in one language.
type Validator struct {
	p *message.Printer
}

// New returns a validator speaking tag (matched against i18n.Supported).
func New(tag language.Tag) *Validator {
	return &Validator{p: i18n.Printer(tag)}
}

var english = New(language.English)

// Input checks raw with the English validator.
func Input(raw string, min, max int) Result { return english.Input(raw, min, max) }

// Range checks a proposed range with the English validator.
func Range(minStr, maxStr string) RangeResult { return english.Range(minStr, maxStr) }

// Input checks a raw guess.
//
// Rules, in order:
//   - blank after trimming → ReasonEmpty
//   - not exactly an optional '-' followed by ASCII digits → ReasonNotInteger
//   - outside [min, max] → ReasonOutOfRange (literals too large for int included)
func (v *Validator) Input(raw string, min, max int) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Reason: ReasonEmpty, Message: v.p.Sprintf(i18n.MsgEmptyInput)}
	}
	if !isInteger(raw) {
		return Result{Reason: ReasonNotInteger, Message: v.p.Sprintf(i18n.MsgNotInteger)}
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		// isInteger already guarantees syntax, so err can only be ErrRange.
		return Result{Reason: ReasonOutOfRange, Message: v.p.Sprintf(i18n.MsgOutOfRange, min, max)}
	}
	return Result{Valid: true, Reason: ReasonOK, Message: v.p.Sprintf(i18n.MsgInputOK), Value: n}
}

// Range checks a proposed [min, max] given as raw form fields.
func (v *Validator) Range(minStr, maxStr string) RangeResult {
	minStr, maxStr = strings.TrimSpace(minStr), strings.TrimSpace(maxStr)
	if minStr == "" || maxStr == "" {
		return RangeResult{Reason: ReasonRangeIncomplete, Message: v.p.Sprintf(i18n.MsgRangeBlank)}
	}

	min, errMin := strconv.Atoi(minStr)
	max, errMax := strconv.Atoi(maxStr)
	if err := errors.Join(errMin, errMax); err != nil {
		return RangeResult{Reason: ReasonRangeNotInteger, Message: v.p.Sprintf(i18n.MsgRangeNotInt)}
	}

	if min >= max {
		return RangeResult{Reason: ReasonRangeOrder, Message: v.p.Sprintf(i18n.MsgRangeOrder)}
	}
	// min < max, so the unsigned difference is exact even when max-min overflows int.
	if uint64(max)-uint64(min) < MinSpan {
		return RangeResult{Reason: ReasonRangeTooNarrow, Message: v.p.Sprintf(i18n.MsgRangeTooTiny, MinSpan)}
	}
	return RangeResult{Valid: true, Reason: ReasonOK, Message: v.p.Sprintf(i18n.MsgRangeOK), Min: min, Max: max}
}

// isInteger reports whether s is an optional '-' followed by one or more ASCII digits.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
