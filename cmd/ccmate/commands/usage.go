package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/logging"
	"github.com/ccmate/ccmate/internal/usage"
)

// usageDays is the report window in days; 0 falls back to the config default.
var usageDays int

func init() {
	usageCmd.Flags().IntVar(&usageDays, "days", 0,
		"report window in days (default from config, usually 30)")
	rootCmd.AddCommand(usageCmd)
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report token usage from session logs",
	Long: `Report token usage aggregated per UTC day and model.

Numbers come from the session logs Claude Code writes under
~/.claude/projects; nothing leaves the machine.`,
	Args: cobra.NoArgs,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	days := usageDays
	if days <= 0 {
		days = d.cfg.Usage.Days
	}

	scanner := usage.NewScanner(d.claude, logging.FromContext(cmd.Context()))
	records, err := scanner.Scan()
	if err != nil {
		return err
	}

	report := usage.Aggregate(records, days, time.Now())

	out := cmd.OutOrStdout()
	if len(report.Days) == 0 {
		fmt.Fprintf(out, "No usage recorded in the last %d days.\n", days)
		return nil
	}

	for _, day := range report.Days {
		fmt.Fprintf(out, "%s  %s\n", titleColor.Sprint(day.Date), formatCounts(day.Total))

		models := make([]string, 0, len(day.Models))
		for model := range day.Models {
			models = append(models, model)
		}
		sort.Strings(models)
		for _, model := range models {
			fmt.Fprintf(out, "    %-28s %s\n", model, dimColor.Sprint(formatCounts(day.Models[model])))
		}
	}

	fmt.Fprintf(out, "\n%s  %s over %d days\n",
		titleColor.Sprint("Total"), formatCounts(report.Total), days)
	return nil
}

// formatCounts renders token counters in a compact in/out/cache form.
func formatCounts(c usage.TokenCounts) string {
	return fmt.Sprintf("in %s  out %s  cache %s",
		humanTokens(c.Input),
		humanTokens(c.Output),
		humanTokens(c.CacheCreation+c.CacheRead),
	)
}

// humanTokens renders a token count with k/M suffixes.
func humanTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
