// Package cmd implements the banker command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/banker"
	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Environment variables providing the defaults of the global flags.
// They are also passed to extensions.
const (
	EnvConfig   = "BANKER_CONFIG"
	EnvDataDir  = "BANKER_DATA_DIR"
	EnvLogLevel = "BANKER_LOG_LEVEL"
)

// Commands is the list of subcommands of the application.
var Commands = []subcommands.Command{
	&verifyCmd{},
	&accountsCmd{},
	&summaryCmd{},
	&statementsCmd{},
	&scheduleCmd{},
	&frequenciesCmd{},
	&inspectCmd{},
	&configCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "Path to the configuration file. Defaults to ~/.banker/config.yaml")
var dataDir = flag.String("data-dir", os.Getenv(EnvDataDir), "Root directory of the financial records. Overrides the configuration.")
var logLevel = flag.String("log-level", os.Getenv(EnvLogLevel), "Log level: debug, info, warn or error. Overrides the configuration.")

// output streams, replaced in tests.
var stdout io.Writer = os.Stdout
var stderr io.Writer = os.Stderr

// loadConfig loads the configuration file and applies the global flags.
//
// Without -config, a missing default configuration file is fine as long as
// -data-dir is set.
func loadConfig() (*banker.Config, error) {
	path := *configFile
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = banker.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := banker.LoadConfig(path)
	switch {
	case err == nil:
	case !explicit && *dataDir != "" && !fileExists(path):
		cfg = banker.NewConfig(*dataDir)
	default:
		return nil, err
	}

	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if cfg.DataDir == "" {
		return nil, &banker.ConfigError{Path: path, Msg: "data_dir is not set"}
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// newLogger returns the application logger, on stderr.
func newLogger(cfg *banker.Config) zerolog.Logger {
	return banker.NewLogger(cfg.LogLevel, stderr)
}

// setup loads the configuration and the logger, reporting errors on stderr.
func setup() (*banker.Config, zerolog.Logger, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not load configuration: %v\n", err)
		return nil, zerolog.Nop(), false
	}
	return cfg, newLogger(cfg), true
}

// printMarkdown prints markdown to stdout, rendered for the terminal if stdout is one.
func printMarkdown(md string) {
	f, ok := stdout.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
	skipMark = color.New(color.FgHiBlack).Sprint("-")
)

// printStatus prints a one line status of an account on stderr.
func printStatus(r banker.AccountReport) {
	switch {
	case !r.OK():
		fmt.Fprintf(stderr, "%s %s: %s\n", failMark, r.Account, summarizeErrs(r.Errs))
	case r.Skipped != "":
		fmt.Fprintf(stderr, "%s %s (%s)\n", skipMark, r.Account, r.Skipped)
	default:
		fmt.Fprintf(stderr, "%s %s\n", okMark, r.Account)
	}
}

func summarizeErrs(errs []error) string {
	s := make([]string, len(errs))
	for i, err := range errs {
		s[i] = err.Error()
	}
	return strings.Join(s, "; ")
}
