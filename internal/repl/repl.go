// internal/repl/repl.go
//
// Line-oriented terminal front end.
// Each input line is either a command or a guess handed verbatim to the
// round (only the line terminator is stripped). Commands:
//
//   new | reset   start a new round over the same range
//   state         print range, attempts and status
//   help          list commands
//   quit | exit   leave
//
// Hints are coloured with fatih/color; color.NoColor disables that.

package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/i18n"
	"github.com/robalobadob/guessnum/internal/score"
)

var (
	errStyle  = color.New(color.FgRed)
	lowStyle  = color.New(color.FgCyan)
	highStyle = color.New(color.FgYellow)
	winStyle  = color.New(color.FgGreen, color.Bold)
	infoStyle = color.New(color.Faint)
)

// Session runs one terminal conversation over a caller-owned round.
type Session struct {
	g           *game.Game
	in          *bufio.Scanner
	out         io.Writer
	lang        language.Tag
	p           *message.Printer
	maxAttempts int
}

// New wires a session. maxAttempts feeds the score shown on a win.
func New(g *game.Game, in io.Reader, out io.Writer, lang language.Tag, maxAttempts int) *Session {
	return &Session{
		g:           g,
		in:          bufio.NewScanner(in),
		out:         out,
		lang:        lang,
		p:           i18n.Printer(lang),
		maxAttempts: maxAttempts,
	}
}

// Run reads lines until EOF, "quit", or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s: ", s.p.Sprintf(i18n.MsgPrompt))
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}

		line := strings.TrimRight(s.in.Text(), "\r")
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgGoodbye))
			return nil
		case "new", "reset":
			s.g.Reset()
			s.banner()
			continue
		case "state":
			s.printState()
			continue
		case "help":
			s.help()
			continue
		}
		s.guess(line)
	}
}

func (s *Session) guess(line string) {
	out := s.g.MakeGuess(line)
	if !out.Valid {
		errStyle.Fprintln(s.out, out.Message)
		return
	}

	switch out.Status {
	case game.StatusTooLow:
		lowStyle.Fprintln(s.out, out.Message)
	case game.StatusTooHigh:
		highStyle.Fprintln(s.out, out.Message)
	case game.StatusWin:
		winStyle.Fprintln(s.out, out.Message)
		secret, _ := s.g.State().Secret.Value()
		infoStyle.Fprintln(s.out, score.FormatStatisticsIn(s.lang, out.Attempts, secret, out.Status))
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgScore, score.Calculate(out.Attempts, s.maxAttempts)))
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgPlayAgain))
	}
}

func (s *Session) banner() {
	fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgNewGame))
	min, max := s.g.Range()
	fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgRangeInfo, min, max))
}

func (s *Session) printState() {
	st := s.g.State()
	fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgRangeInfo, st.MinRange, st.MaxRange))
	fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgAttempts, st.Attempts))
	if st.GameOver {
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgFinished))
	} else {
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.MsgInProgress))
	}
}

func (s *Session) help() {
	for _, key := range []string{i18n.MsgHelpNew, i18n.MsgHelpState, i18n.MsgHelpHelp, i18n.MsgHelpQuit} {
		infoStyle.Fprintln(s.out, s.p.Sprintf(key))
	}
}
