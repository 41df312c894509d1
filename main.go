package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessnum/internal/config"
	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/httpserver"
	"github.com/robalobadob/guessnum/internal/i18n"
	"github.com/robalobadob/guessnum/internal/metrics"
	"github.com/robalobadob/guessnum/internal/repl"
	"github.com/robalobadob/guessnum/internal/store"
	"github.com/robalobadob/guessnum/internal/tui"
	"github.com/robalobadob/guessnum/internal/validate"
)

// Version is set at build time.
var Version = "dev"

// flags override the environment when set on the command line.
var flags struct {
	min, max string
	seed     uint64
	lang     string
	daily    bool
}

var rootCmd = &cobra.Command{
	Use:   "guessnum",
	Short: "Guess the secret number",
	Long: `guessnum draws a secret integer from a range and answers each guess
with "too low", "too high" or a win.

With no subcommand it opens the full-screen terminal UI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// logs would tear the alternate screen
		log.Logger = zerolog.New(io.Discard)

		g, err := newRound(cfg)
		if err != nil {
			return err
		}
		return tui.Run(tui.New(g, cfg.Language(), cfg.MaxAttempts))
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a plain line-by-line terminal session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		g, err := newRound(cfg)
		if err != nil {
			return err
		}
		return repl.New(g, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Language(), cfg.MaxAttempts).Run(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rounds over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		srv := httpserver.New(cfg, store.NewMemoryStore(), metrics.New())
		log.Info().Str("port", cfg.Port).Str("version", Version).Msg("starting guessnum server")
		return srv.Start(cmd.Context(), ":"+cfg.Port)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "guessnum version %s\n", Version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.min, "min", "", "lower bound of the range (inclusive)")
	pf.StringVar(&flags.max, "max", "", "upper bound of the range (inclusive)")
	pf.Uint64Var(&flags.seed, "seed", 0, "seed for reproducible secrets (0 = random)")
	pf.StringVar(&flags.lang, "lang", "", "message language: en or ru")
	pf.BoolVar(&flags.daily, "daily", false, "play the number of the day")

	rootCmd.AddCommand(playCmd, serveCmd, versionCmd)
}

// loadConfig reads the environment, applies flags, and sets up logging.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("min") || fs.Changed("max") {
		lo, hi := flags.min, flags.max
		if !fs.Changed("min") {
			lo = strconv.Itoa(cfg.MinRange)
		}
		if !fs.Changed("max") {
			hi = strconv.Itoa(cfg.MaxRange)
		}
		rr := validate.New(cfg.Language()).Range(lo, hi)
		if !rr.Valid {
			return cfg, errors.New(rr.Message)
		}
		cfg.MinRange, cfg.MaxRange = rr.Min, rr.Max
	}
	if fs.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if fs.Changed("lang") {
		cfg.Lang = flags.lang
	}
	if fs.Changed("daily") {
		cfg.Daily = flags.daily
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newRound(cfg config.Config) (*game.Game, error) {
	g, err := game.New(cfg.MinRange, cfg.MaxRange, cfg.GameOptions()...)
	if err != nil {
		return nil, fmt.Errorf("new round: %w", err)
	}
	log.Debug().Str("gameId", g.ID()).Str("lang", i18n.Match(cfg.Language()).String()).Msg("round started")
	return g, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("guessnum exited")
		os.Exit(1)
	}
}
