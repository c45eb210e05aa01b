package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/scoring"
	"github.com/decisionmotor/maturity/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored submissions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		company, _ := cmd.Flags().GetString("company")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if company != "" {
			opts.Limit = 0
		}
		subs, err := s.ResponseRepo().QuerySubmissions(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		if company != "" {
			kept := subs[:0]
			for _, sub := range subs {
				if strings.EqualFold(sub.Company, company) {
					kept = append(kept, sub)
				}
			}
			subs = kept
			if limit > 0 && len(subs) > limit {
				subs = subs[:limit]
			}
		}

		if len(subs) == 0 {
			fmt.Println("No submissions found.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-20s  %-20s  %4s  %5s\n",
			"Submission", "Date", "Respondent", "Company", "Qs", "Mean")
		fmt.Println(strings.Repeat("─", 112))
		for _, sub := range subs {
			fmt.Printf("%-36s  %-16s  %-20s  %-20s  %4d  %5.2f\n",
				sub.SubmissionID,
				sub.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(sub.RespondentName, 20),
				truncate(sub.Company, 20),
				sub.QuestionCount,
				sub.OverallLevel,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <submission-id>",
	Short: "Show every answer of one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		sub, err := s.ResponseRepo().GetSubmission(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		if sub == nil {
			return fmt.Errorf("submission %s not found", args[0])
		}
		rows, err := s.ResponseRepo().QueryResponses(ctx, store.ResponseFilter{SubmissionID: sub.SubmissionID})
		if err != nil {
			return fmt.Errorf("query responses: %w", err)
		}

		fmt.Printf("Submission: %s\n", sub.SubmissionID)
		fmt.Printf("Time:       %s\n", sub.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Respondent: %s <%s>\n", sub.RespondentName, sub.RespondentEmail)
		fmt.Printf("Company:    %s\n", sub.Company)
		if sub.BankTitle != "" {
			fmt.Printf("Bank:       %s\n", sub.BankTitle)
		}
		if sub.ReportPath != "" {
			fmt.Printf("Report:     %s\n", sub.ReportPath)
		}

		fmt.Println()
		fmt.Printf("%-24s  %-28s  %7s  %5s\n", "Category", "Variable", "Average", "Level")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range rows {
			fmt.Printf("%-24s  %-28s  %7.2f  %5d\n",
				truncate(r.Category, 24), truncate(r.Variable, 28), r.Average, r.Level)
			if r.Note != "" {
				fmt.Printf("    note: %s\n", r.Note)
			}
		}

		answers := toAnswers(rows)
		fmt.Println()
		fmt.Printf("%-32s  %8s\n", "Category", "Mean")
		fmt.Println(strings.Repeat("─", 42))
		for _, c := range scoring.Aggregate(answers) {
			fmt.Printf("%-32s  %8.2f\n", truncate(c.Category, 32), c.Mean)
		}
		fmt.Println(strings.Repeat("─", 42))
		fmt.Printf("%-32s  %8.2f\n", "Overall", scoring.OverallMean(answers))
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")
	historyListCmd.Flags().StringP("company", "c", "", "Only show submissions from this company")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
