package banker

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`
data_dir: /records
default_currency: EUR
frequencies:
  yearly:
    period_days: 365
    buffer_days: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "/records", cfg.DataDir)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, "warn", cfg.LogLevel)
	yearly, err := cfg.Frequencies.Resolve("yearly")
	require.NoError(t, err)
	assert.Equal(t, FrequencyPolicy{Name: "yearly", PeriodDays: 365, BufferDays: 10}, yearly)
	_, err = cfg.Frequencies.Resolve(Monthly)
	assert.NoError(t, err, "built-in frequencies are kept")
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "data_dir: /records\ncurrency: EUR\n"},
		{"zero period", "frequencies:\n  never:\n    period_days: 0\n"},
		{"not yaml", "data_dir: [\n"},
	}
	for _, tt := range tests {
		_, err := DecodeConfig(strings.NewReader(tt.input))
		assert.Error(t, err, tt.name)
	}
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, NewConfig(""), cfg)
}

func TestLoadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ConfigDirName, "config.yaml")
	writeFile(t, path, "data_dir: finance\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "finance"), cfg.DataDir, "relative data_dir is in the home directory")

	def, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, path, def)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, "config file does not exist", cerr.Msg)
}

func TestConfigEncode(t *testing.T) {
	cfg := NewConfig("/records")
	var b bytes.Buffer
	require.NoError(t, cfg.Encode(&b))

	back, err := DecodeConfig(&b)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestConfigPaths(t *testing.T) {
	cfg := NewConfig("/records")
	assert.Equal(t, filepath.Join("/records", "accounts"), cfg.AccountsDir())
	assert.Equal(t, filepath.Join("/records", "schedule.yaml"), cfg.ScheduleFile())
	assert.Equal(t, filepath.Join("/records", "transactions"), cfg.TransactionsDir())
	assert.Equal(t, filepath.Join("/records", "receipts"), cfg.ReceiptsDir())
}

func TestNewLogger(t *testing.T) {
	var b bytes.Buffer
	log := NewLogger("info", &b)
	log.Debug().Msg("hidden")
	log.Info().Str("account", "chk").Msg("shown")

	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), `"account":"chk"`)

	b.Reset()
	log = NewLogger("nonsense", &b)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), "shown")

}
