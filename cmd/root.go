package cmd

import (
	"fmt"

	"github.com/decisionmotor/maturity/internal/config"
	"github.com/decisionmotor/maturity/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maturity",
	Short: "Decision engine maturity assessment",
	Long: `maturity runs a self-scored maturity questionnaire in the terminal,
stores every submission in a local SQLite log and writes a PDF report.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MATURITY_DB env var)")
	pf.String("bank", "", "Question bank file, .json or .yaml (overrides MATURITY_BANK env var)")
	pf.String("out", "", "Directory for PDF reports (overrides MATURITY_REPORT_DIR env var)")
	pf.String("log-file", "", "Log file path (overrides MATURITY_LOG_FILE env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides MATURITY_LOG_LEVEL env var)")
	rootCmd.Flags().Bool("no-password", false, "Run the questionnaire without a password when "+config.EnvPassword+" is unset")

	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig reads the environment and applies flag overrides. Flags take
// precedence over MATURITY_* variables, which take precedence over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	override := func(flag string, dst *string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	override("db", &cfg.DBPath)
	override("bank", &cfg.BankPath)
	override("out", &cfg.ReportDir)
	override("log-file", &cfg.LogFile)
	override("log-level", &cfg.LogLevel)
	if f := cmd.Flags().Lookup("no-password"); f != nil {
		cfg.NoPassword, _ = cmd.Flags().GetBool("no-password")
	}
	return cfg, nil
}

// openStore resolves configuration and opens the database it names.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve config: %w", err)
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, cfg, fmt.Errorf("create database dir: %w", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}
