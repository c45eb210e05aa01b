package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a question bank file for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, src, err := loadBank(cmd, args)
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d questions, %d categories)\n", src, len(bank.Questions), len(bank.Categories()))
		return nil
	},
}

var bankShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "List the questions of a bank",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, _, err := loadBank(cmd, args)
		if err != nil {
			return err
		}

		fmt.Println(bank.Title)
		if bank.Objective != "" {
			fmt.Println(bank.Objective)
		}
		fmt.Println()
		fmt.Printf("%-3s  %-24s  %-28s  %s\n", "#", "Category", "Variable", "Sub-questions")
		fmt.Println(strings.Repeat("─", 76))
		for i, q := range bank.Questions {
			subs := "-"
			if q.HasSubQuestions() {
				subs = fmt.Sprint(len(q.SubQuestions))
			}
			fmt.Printf("%-3d  %-24s  %-28s  %s\n",
				i+1, truncate(q.Category, 24), truncate(q.Variable, 28), subs)
		}
		return nil
	},
}

// loadBank reads the bank named by args, or the configured one.
func loadBank(cmd *cobra.Command, args []string) (*questionbank.Bank, string, error) {
	if len(args) == 1 {
		b, err := questionbank.Load(args[0])
		return b, args[0], err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve config: %w", err)
	}
	src := cfg.BankPath
	if src == "" {
		src = "built-in bank"
	}
	b, err := cfg.Bank()
	return b, src, err
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankShowCmd)
}
