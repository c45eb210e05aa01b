package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/scoring"
	"github.com/decisionmotor/maturity/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mean levels per category across stored responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		rows, err := s.ResponseRepo().QueryResponses(ctx, store.ResponseFilter{Company: company})
		if err != nil {
			return fmt.Errorf("query responses: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No responses recorded yet.")
			return nil
		}

		answers := toAnswers(rows)
		submissions := make(map[string]struct{})
		for _, r := range rows {
			submissions[r.SubmissionID] = struct{}{}
		}

		title := "All companies"
		if company != "" {
			title = company
		}
		fmt.Printf("%s: %d submissions, %d responses\n\n", title, len(submissions), len(rows))

		fmt.Printf("%-32s  %9s  %8s  %s\n", "Category", "Responses", "Mean", "Level")
		fmt.Println(strings.Repeat("─", 64))
		for _, c := range scoring.Aggregate(answers) {
			fmt.Printf("%-32s  %9d  %8.2f  %d\n",
				truncate(c.Category, 32), c.Count, c.Mean, scoring.Classify(c.Mean))
		}
		fmt.Println(strings.Repeat("─", 64))
		overall := scoring.OverallMean(answers)
		fmt.Printf("%-32s  %9d  %8.2f  %d\n", "Overall", len(answers), overall, scoring.Classify(overall))
		return nil
	},
}

// toAnswers converts stored rows back into scored answers.
func toAnswers(rows []store.ResponseRecord) []scoring.Answer {
	out := make([]scoring.Answer, 0, len(rows))
	for _, r := range rows {
		out = append(out, scoring.Answer{
			Category: r.Category,
			Variable: r.Variable,
			Average:  r.Average,
			Level:    scoring.Level(r.Level),
			Note:     r.Note,
		})
	}
	return out
}

func init() {
	statsCmd.Flags().StringP("company", "c", "", "Only include responses from this company")
}
