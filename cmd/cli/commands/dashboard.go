package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	dashboardCmd.AddCommand(summaryCmd)
	dashboardCmd.AddCommand(analyticsCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Reporting views",
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the executive summary of top-level projects",
	RunE: func(_ *cobra.Command, _ []string) error {
		rows, err := apiClient.GetSummary(context.Background())
		if err != nil {
			return fmt.Errorf("error getting summary: %w", err)
		}
		return printJSON(rows)
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show per-lead delivery analytics",
	RunE: func(_ *cobra.Command, _ []string) error {
		stats, err := apiClient.GetAnalytics(context.Background())
		if err != nil {
			return fmt.Errorf("error getting analytics: %w", err)
		}
		return printJSON(stats)
	},
}

// GetDashboardCmd returns the dashboard command
func GetDashboardCmd() *cobra.Command {
	return dashboardCmd
}
