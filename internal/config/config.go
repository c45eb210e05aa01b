// Package config resolves runtime settings from MATURITY_* environment
// variables. Command-line flags override them in cmd.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"

	"github.com/decisionmotor/maturity/internal/gate"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/store"
)

// Environment variable names.
const (
	EnvDB        = "MATURITY_DB"
	EnvBank      = "MATURITY_BANK"
	EnvReportDir = "MATURITY_REPORT_DIR"
	EnvPassword  = "MATURITY_PASSWORD"
	EnvLogFile   = "MATURITY_LOG_FILE"
	EnvLogLevel  = "MATURITY_LOG_LEVEL"
)

// ErrNoPassword is returned by RequireGate when no password is configured
// and an open questionnaire was not asked for.
var ErrNoPassword = errors.New("no password configured")

// Config holds resolved settings.
type Config struct {
	DataDir   string
	DBPath    string
	BankPath  string // empty selects the embedded bank
	ReportDir string
	Password  string // plaintext or bcrypt hash
	LogFile   string
	LogLevel  string

	// NoPassword allows running without a password (--no-password).
	NoPassword bool
}

// FromEnv builds a Config from the environment, defaulting paths to the
// data directory.
func FromEnv() (Config, error) {
	dataDir, err := store.DefaultDataDir()
	if err != nil {
		return Config{}, err
	}
	c := Config{
		DataDir:   dataDir,
		DBPath:    os.Getenv(EnvDB),
		BankPath:  os.Getenv(EnvBank),
		ReportDir: os.Getenv(EnvReportDir),
		Password:  os.Getenv(EnvPassword),
		LogFile:   os.Getenv(EnvLogFile),
		LogLevel:  os.Getenv(EnvLogLevel),
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "maturity.db")
	}
	if c.ReportDir == "" {
		c.ReportDir = filepath.Join(dataDir, "reports")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "maturity.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c, nil
}

// Bank loads the configured question bank, or the embedded default.
func (c Config) Bank() (*questionbank.Bank, error) {
	if c.BankPath == "" {
		return questionbank.Default(), nil
	}
	b, err := questionbank.Load(c.BankPath)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return b, nil
}

// RequireGate returns the gate for the configured secret. Without a secret it
// fails with ErrNoPassword unless NoPassword is set.
func (c Config) RequireGate() (*gate.Gate, error) {
	g := c.Gate()
	if g.Open() && !c.NoPassword {
		return nil, fmt.Errorf("%w: set %s or pass --no-password", ErrNoPassword, EnvPassword)
	}
	return g, nil
}

// Gate returns the password gate for the configured secret. An empty secret
// yields an open gate.
func (c Config) Gate() *gate.Gate {
	return gate.New(c.Password)
}

// SetupLogging points the default logger at a logfmt file. The TUI owns the
// terminal, so nothing is logged to stderr. Callers close the returned file.
func SetupLogging(path, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetDefault(log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}))
	return f, nil
}
