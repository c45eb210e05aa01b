package cmd

import (
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/advisor"
	"github.com/decisionmotor/maturity/internal/app"
	"github.com/decisionmotor/maturity/internal/config"
	"github.com/decisionmotor/maturity/internal/llm"
	"github.com/decisionmotor/maturity/internal/submission"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	logFile, err := config.SetupLogging(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// A bad bank is fatal before anything is drawn.
	bank, err := cfg.Bank()
	if err != nil {
		return err
	}

	g, err := cfg.RequireGate()
	if err != nil {
		return err
	}
	if g.Open() {
		fmt.Fprintln(os.Stderr, "warning: running without a password (--no-password)")
		log.Warn("password gate disabled")
	}

	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var opts []submission.Option
	notice := ""
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		notice = "Recommendations unavailable: " + err.Error()
	case provider == nil:
		notice = "No LLM provider configured; reports will not include recommendations."
	default:
		opts = append(opts, submission.WithAdvisor(advisor.New(provider, advisor.DefaultConfig())))
		log.Info("recommendations enabled", "model", provider.ModelID())
	}

	svc := submission.New(bank, st.ResponseRepo(), cfg.ReportDir, opts...)
	log.Info("starting", "bank", bank.Title, "questions", len(bank.Questions), "db", cfg.DBPath)

	return app.Run(app.Options{
		Bank:      bank,
		Gate:      g,
		Submitter: svc,
		Responses: st.ResponseRepo(),
		Notice:    notice,
	})
}
