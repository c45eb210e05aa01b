package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the audit log of recommendation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		var shown []store.LLMRequestEventRecord
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failedOnly && e.Success {
				continue
			}
			shown = append(shown, e)
		}
		if len(shown) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-10s  %-28s  %7s  %7s  %6s  %s\n",
			"ID", "Date", "Provider", "Model", "In", "Out", "Ms", "Status")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range shown {
			status := "ok"
			if !e.Success {
				status = "failed: " + truncate(e.ErrorMessage, 30)
			}
			fmt.Printf("%-5d  %-16s  %-10s  %-28s  %7d  %7d  %6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(e.Provider, 10),
				truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens, e.LatencyMs,
				status,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("Request %d (%s)\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("  %s / %s, purpose %q\n", e.Provider, e.Model, e.Purpose)
		fmt.Printf("  %d tokens in, %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if !e.Success {
			fmt.Printf("  failed: %s\n", e.ErrorMessage)
		}

		printBody("Prompt", e.RequestBody)
		printBody("Reply", e.ResponseBody)
		return nil
	},
}

// printBody prints a captured body under a ruled heading, indenting it when
// it holds JSON.
func printBody(title, body string) {
	fmt.Println()
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 60))
	if body == "" {
		fmt.Println("(not captured)")
		return
	}
	var buf bytes.Buffer
	if json.Indent(&buf, []byte(body), "", "  ") == nil {
		fmt.Println(buf.String())
		return
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		printUsage("Purpose", byPurpose, func(u store.LLMUsageStats) string { return u.Purpose })
		fmt.Println()
		printUsage("Model", byModel, func(u store.LLMUsageStats) string { return u.Model })
		return nil
	},
}

// printUsage renders one usage table keyed by label, followed by totals.
func printUsage(heading string, rows []store.LLMUsageStats, label func(store.LLMUsageStats) string) {
	rule := strings.Repeat("─", 80)
	fmt.Printf("%-32s  %6s  %10s  %10s  %8s\n", heading, "Calls", "Input", "Output", "Avg Ms")
	fmt.Println(rule)

	var calls, in, out int
	for _, u := range rows {
		fmt.Printf("%-32s  %6d  %10d  %10d  %8d\n",
			truncate(label(u), 32), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Println(rule)
	fmt.Printf("%-32s  %6d  %10d  %10d\n", "TOTAL", calls, in, out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. recommendations)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
