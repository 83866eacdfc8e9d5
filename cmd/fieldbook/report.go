// Report command: engine-backed aggregate views.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <projects|users|analytics>",
	Short: "Show engine-backed aggregate reports",
	Long: `Report runs SQL aggregates over the engine's detail tables.

  projects   one row of cross-entity counts per project
  users      one row of message counts per user
  analytics  the project list with per-project aggregates attached

Reports are presentation enrichments: with the engine unavailable,
"analytics" falls back to the raw key-value project list and the other
reports come back empty. Run "sync --details" first to refresh the detail
tables the aggregates read from.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"projects", "users", "analytics"},
	RunE:      runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	switch args[0] {
	case "projects":
		reports := a.svc.ProjectReports()
		if flagJSON {
			return printJSON(reports)
		}
		for _, r := range reports {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s  msgs=%d boq=%d rfis=%d tests=%d tasks=%d reports=%d\n",
				r.Name, r.MessageCount, r.BoqItemCount, r.RfiCount, r.LabTestCount, r.TaskCount, r.ReportCount)
		}
	case "users":
		reports := a.svc.UserReports()
		if flagJSON {
			return printJSON(reports)
		}
		for _, r := range reports {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-16s  sent=%d received=%d unread=%d\n",
				r.Name, r.Role, r.SentCount, r.ReceivedCount, r.UnreadCount)
		}
	case "analytics":
		projects, err := a.svc.ProjectsWithAnalytics()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(projects)
		}
		for _, p := range projects {
			if p.Analytics == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  analytics unavailable\n", p.Name)
				continue
			}
			an := p.Analytics
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s  boq=%d rfis(open/approved)=%d/%d tests(pass/fail)=%d/%d progress=%.1f%%\n",
				p.Name, an.BoqItemCount, an.OpenRfiCount, an.ApprovedRfiCount,
				an.PassedLabTests, an.FailedLabTests, an.AvgScheduleProgress)
		}
	default:
		return fmt.Errorf("unknown report %q (valid: projects, users, analytics)", args[0])
	}
	return nil
}
