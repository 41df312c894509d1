// internal/i18n/i18n.go
//
// Message catalogue for every player-facing string.
// Keys are the English format strings themselves, so an English printer
// needs no entries: golang.org/x/text/message falls back to the key.
// Russian translations are registered in the default catalogue at init.
//
// Usage:
//   p := i18n.Printer(language.Russian)
//   p.Sprintf(i18n.MsgTooLow)

package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validation messages.
const (
	MsgEmptyInput   = "Error: enter a number"
	MsgNotInteger   = "Error: enter a whole number"
	MsgOutOfRange   = "Error: the number must be between %d and %d"
	MsgInputOK      = "Validation passed"
	MsgRangeBlank   = "Error: both fields must be filled in"
	MsgRangeNotInt  = "Error: enter whole numbers"
	MsgRangeOrder   = "Error: the minimum must be less than the maximum"
	MsgRangeTooTiny = "Error: the range must span at least %d numbers"
	MsgRangeOK      = "Range is valid"
)

// Round messages.
const (
	MsgWin       = "Congratulations! You guessed the number %d in %d attempts!"
	MsgTooLow    = "Too low! Try again."
	MsgTooHigh   = "Too high! Try again."
	MsgRoundOver = "The round is over. Start a new game to keep playing."
)

// Statistics lines.
const (
	MsgStatsWin     = "Win! The number %d was guessed in %d attempts"
	MsgStatsTooLow  = "Attempt %d: too low"
	MsgStatsTooHigh = "Attempt %d: too high"
	MsgStatsUnknown = "Unknown game status"
)

// Presentation strings shared by the terminal front ends.
const (
	MsgTitle       = "Guess the number"
	MsgNewGame     = "=== New game started ==="
	MsgRangeInfo   = "Range: %d to %d"
	MsgAttempts    = "Attempts: %d"
	MsgInProgress  = "Status: in progress"
	MsgFinished    = "Status: round over"
	MsgPrompt      = "Your guess"
	MsgAttemptLine = "Attempt %d: %s - %s"
	MsgScore       = "Score: %d/100"
	MsgPleaseEnter = "Please enter a number"
	MsgPlayAgain   = "Type 'new' to play again or 'quit' to exit."
	MsgGoodbye     = "Goodbye!"
	MsgHelpNew     = "new | reset   start a new round"
	MsgHelpState   = "state         show range, attempts and status"
	MsgHelpHelp    = "help          list commands"
	MsgHelpQuit    = "quit | exit   leave"
)

var russian = map[string]string{
	MsgEmptyInput:   "Ошибка: Введите число",
	MsgNotInteger:   "Ошибка: Введите целое число",
	MsgOutOfRange:   "Ошибка: Число должно быть в диапазоне от %d до %d",
	MsgInputOK:      "Валидация пройдена успешно",
	MsgRangeBlank:   "Ошибка: Оба поля должны быть заполнены",
	MsgRangeNotInt:  "Ошибка: Введите целые числа",
	MsgRangeOrder:   "Ошибка: Минимальное значение должно быть меньше максимального",
	MsgRangeTooTiny: "Ошибка: Диапазон должен быть не менее %d чисел",
	MsgRangeOK:      "Диапазон валиден",

	MsgWin:       "Поздравляем! Вы угадали число %d за %d попыток!",
	MsgTooLow:    "Слишком маленькое число! Попробуйте еще раз.",
	MsgTooHigh:   "Слишком большое число! Попробуйте еще раз.",
	MsgRoundOver: "Раунд завершен. Начните новую игру, чтобы продолжить.",

	MsgStatsWin:     "Победа! Число %d угадано за %d попыток",
	MsgStatsTooLow:  "Попытка %d: Слишком маленькое число",
	MsgStatsTooHigh: "Попытка %d: Слишком большое число",
	MsgStatsUnknown: "Неизвестный статус игры",

	MsgTitle:       "Угадай число",
	MsgNewGame:     "=== Новая игра началась ===",
	MsgRangeInfo:   "Диапазон чисел: от %d до %d",
	MsgAttempts:    "Попыток: %d",
	MsgInProgress:  "Статус: Игра продолжается",
	MsgFinished:    "Статус: Игра завершена",
	MsgPrompt:      "Ваше предположение",
	MsgAttemptLine: "Попытка %d: %s - %s",
	MsgScore:       "Счет: %d/100",
	MsgPleaseEnter: "Пожалуйста, введите число",
	MsgPlayAgain:   "Введите 'new' для новой игры или 'quit' для выхода.",
	MsgGoodbye:     "До свидания!",
	MsgHelpNew:     "new | reset   начать новую игру",
	MsgHelpState:   "state         показать диапазон, попытки и статус",
	MsgHelpHelp:    "help          список команд",
	MsgHelpQuit:    "quit | exit   выйти",
}

// Supported lists the languages with a full catalogue, default first.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

func init() {
	for key, msg := range russian {
		if err := message.SetString(language.Russian, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
}

// Printer returns a printer for tag, matched against Supported.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag))
}

// Match maps an arbitrary tag onto the closest supported language.
func Match(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return Supported[idx]
}

// Parse parses a BCP 47 string ("en", "ru-RU") and matches it.
// An empty string yields English.
func Parse(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("parse language %q: %w", s, err)
	}
	return Match(tag), nil
}
