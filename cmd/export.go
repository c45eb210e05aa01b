package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/store"
)

var exportHeader = []string{
	"submission_id", "timestamp", "name", "email", "company",
	"category", "variable", "average", "level", "note",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored responses as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		submissionID, _ := cmd.Flags().GetString("submission")
		output, _ := cmd.Flags().GetString("output")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ResponseRepo().QueryResponses(cmd.Context(), store.ResponseFilter{
			SubmissionID: submissionID,
			Company:      company,
		})
		if err != nil {
			return fmt.Errorf("query responses: %w", err)
		}

		var w io.Writer = os.Stdout
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := writeCSV(w, rows); err != nil {
			return err
		}
		if w != os.Stdout {
			fmt.Fprintf(os.Stderr, "Exported %d rows to %s\n", len(rows), output)
		}
		return nil
	},
}

// writeCSV writes one line per stored response under exportHeader.
func writeCSV(w io.Writer, rows []store.ResponseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.SubmissionID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.RespondentName,
			r.RespondentEmail,
			r.Company,
			r.Category,
			r.Variable,
			strconv.FormatFloat(r.Average, 'f', 2, 64),
			strconv.Itoa(r.Level),
			r.Note,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func init() {
	exportCmd.Flags().StringP("company", "c", "", "Only export responses from this company")
	exportCmd.Flags().StringP("submission", "s", "", "Only export one submission")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
