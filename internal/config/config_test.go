package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/daily"
	"github.com/robalobadob/guessnum/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 1, c.MinRange)
	assert.Equal(t, 100, c.MaxRange)
	assert.Equal(t, 10, c.MaxAttempts)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, language.English, c.Language())
	assert.False(t, c.Production())
	assert.IsType(t, game.CryptoSource(), c.Source())
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GUESS_MIN", "-50")
	t.Setenv("GUESS_MAX", "50")
	t.Setenv("GUESS_LANG", "ru")
	t.Setenv("GUESS_SEED", "7")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("APP_ENV", "production")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, -50, c.MinRange)
	assert.Equal(t, 50, c.MaxRange)
	assert.Equal(t, language.Russian, c.Language())
	assert.Equal(t, 90*time.Minute, c.SessionTTL)
	assert.True(t, c.Production())
	assert.NotEqual(t, game.CryptoSource(), c.Source())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GUESS_MAX=500\n"), 0o600))
	// godotenv writes into the process env; register a restore, then clear it
	t.Setenv("GUESS_MAX", "")
	require.NoError(t, os.Unsetenv("GUESS_MAX"))
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500, c.MaxRange)
}

func TestNarrowRangeFailsValidateNotLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GUESS_MIN", "1")
	t.Setenv("GUESS_MAX", "5")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxRange)

	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 10")

	c.MaxRange = 50
	require.NoError(t, c.Validate())
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GUESS_MAX", "lots")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	base := Config{MinRange: 1, MaxRange: 100, MaxAttempts: 10, SessionTTL: time.Hour, Lang: "en"}
	require.NoError(t, base.Validate())

	bad := base
	bad.MaxAttempts = 0
	require.Error(t, bad.Validate())

	bad = base
	bad.SessionTTL = 0
	require.Error(t, bad.Validate())

	bad = base
	bad.Lang = "!!"
	require.Error(t, bad.Validate())

	bad = base
	bad.MinRange, bad.MaxRange = 100, 1
	require.Error(t, bad.Validate())
}

func TestSourceDailyWins(t *testing.T) {
	c := Config{Daily: true, Seed: 5, DailySalt: "s"}
	_, ok := c.Source().(*daily.Source)
	assert.True(t, ok)
}
