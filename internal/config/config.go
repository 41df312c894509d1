// internal/config/config.go
//
// Process configuration.
// Load reads an optional .env file (godotenv), then parses environment
// variables into Config (caarlos0/env). CLI flags may override fields after
// loading; call Validate again once they have.
//
// Environment variables (defaults in brackets):
//   PORT [5175]                 HTTP listen port
//   LOG_LEVEL [info]            zerolog level
//   LOG_FORMAT [json]           json | console
//   GUESS_MIN [1] GUESS_MAX [100]
//   GUESS_MAX_ATTEMPTS [10]     attempt budget for scoring
//   GUESS_SEED [0]              non-zero: reproducible secrets
//   GUESS_LANG [en]             en | ru
//   GUESS_DAILY [false]         number-of-the-day mode
//   DAILY_SALT [local_dev_salt]
//   JWT_SECRET [dev_secret_change_me]
//   SESSION_TTL [24h]
//   COOKIE_NAME [guess_token]
//   CLIENT_ORIGIN [http://localhost:5173]
//   APP_ENV [development]       "production" turns on secure cookies

package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/daily"
	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/i18n"
	"github.com/robalobadob/guessnum/internal/validate"
)

// Config holds every tunable of the process.
type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	MinRange    int    `env:"GUESS_MIN" envDefault:"1"`
	MaxRange    int    `env:"GUESS_MAX" envDefault:"100"`
	MaxAttempts int    `env:"GUESS_MAX_ATTEMPTS" envDefault:"10"`
	Seed        uint64 `env:"GUESS_SEED" envDefault:"0"`
	Lang        string `env:"GUESS_LANG" envDefault:"en"`
	Daily       bool   `env:"GUESS_DAILY" envDefault:"false"`
	DailySalt   string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	TokenSecret  string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"guess_token"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	AppEnv       string        `env:"APP_ENV" envDefault:"development"`
}

// Load reads .env (if present) and the environment. It does not validate:
// callers apply their overrides first and then call Validate.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	rr := validate.Range(strconv.Itoa(c.MinRange), strconv.Itoa(c.MaxRange))
	if !rr.Valid {
		return fmt.Errorf("range [%d, %d]: %s", c.MinRange, c.MaxRange, rr.Message)
	}
	if c.MaxAttempts <= 0 {
		return errors.New("GUESS_MAX_ATTEMPTS must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if _, err := i18n.Parse(c.Lang); err != nil {
		return err
	}
	return nil
}

// Language returns the configured language, English if unparsable.
func (c Config) Language() language.Tag {
	tag, err := i18n.Parse(c.Lang)
	if err != nil {
		return language.English
	}
	return tag
}

// Production reports whether APP_ENV is "production".
func (c Config) Production() bool { return c.AppEnv == "production" }

// Source picks the secret source: daily beats seed, seed beats crypto/rand.
func (c Config) Source() game.Source {
	switch {
	case c.Daily:
		return daily.NewSource(c.DailySalt)
	case c.Seed != 0:
		return game.NewSeededSource(c.Seed)
	default:
		return game.CryptoSource()
	}
}

// GameOptions returns the options every new round should be built with.
func (c Config) GameOptions() []game.Option {
	return []game.Option{game.WithSource(c.Source()), game.WithLanguage(c.Language())}
}
