package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/submission"
)

var reportCmd = &cobra.Command{
	Use:   "report <submission-id>",
	Short: "Regenerate the PDF report of a stored submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		bank, err := cfg.Bank()
		if err != nil {
			return err
		}

		svc := submission.New(bank, s.ResponseRepo(), cfg.ReportDir)
		path, err := svc.Rebuild(cmd.Context(), args[0])
		if errors.Is(err, submission.ErrNotFound) {
			return fmt.Errorf("submission %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("rebuild report: %w", err)
		}
		fmt.Println("Report written to", path)
		return nil
	},
}
