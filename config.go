package banker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the name of the directory, in the user's home, holding the configuration.
const ConfigDirName = ".banker"

// Config is the user configuration. It is loaded once and passed explicitly to
// the components that need it.
type Config struct {
	DataDir         string      `yaml:"data_dir"`         // root of the financial records
	DefaultCurrency string      `yaml:"default_currency"` // currency of amounts that do not declare one
	LogLevel        string      `yaml:"log_level"`
	Frequencies     Frequencies `yaml:"frequencies"` // merged on top of DefaultFrequencies
}

// NewConfig returns a configuration for the given data directory with all defaults.
func NewConfig(dataDir string) *Config {
	return &Config{
		DataDir:         dataDir,
		DefaultCurrency: "USD",
		LogLevel:        "warn",
		Frequencies:     DefaultFrequencies(),
	}
}

// DefaultConfigPath returns ~/.banker/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not locate home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName, "config.yaml"), nil
}

// LoadConfig reads the configuration file at path.
//
// A relative data_dir is resolved against the user's home directory.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Path: path, Msg: "config file does not exist"}
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "cannot open config file", Err: err}
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "invalid config file", Err: err}
	}
	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not resolve data_dir %q: %w", cfg.DataDir, err)
		}
		cfg.DataDir = filepath.Join(home, cfg.DataDir)
	}
	return cfg, nil
}

// DecodeConfig decodes a yaml configuration. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	raw := struct {
		DataDir         string      `yaml:"data_dir"`
		DefaultCurrency string      `yaml:"default_currency"`
		LogLevel        string      `yaml:"log_level"`
		Frequencies     Frequencies `yaml:"frequencies"`
	}{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg := NewConfig(raw.DataDir)
	if raw.DefaultCurrency != "" {
		cfg.DefaultCurrency = raw.DefaultCurrency
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	cfg.Frequencies = cfg.Frequencies.Merge(raw.Frequencies)
	if err := cfg.Frequencies.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes the configuration in yaml.
func (c *Config) Encode(w io.Writer) error {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(b.Bytes())
	return err
}

// AccountsDir is the directory holding one sub-directory per account.
func (c *Config) AccountsDir() string { return filepath.Join(c.DataDir, "accounts") }

// ScheduleFile is the file declaring scheduled payments.
func (c *Config) ScheduleFile() string { return filepath.Join(c.DataDir, "schedule.yaml") }

// TransactionsDir is the directory holding the monthly transaction files.
func (c *Config) TransactionsDir() string { return filepath.Join(c.DataDir, "transactions") }

// ReceiptsDir is the directory holding receipt files.
func (c *Config) ReceiptsDir() string { return filepath.Join(c.DataDir, "receipts") }
