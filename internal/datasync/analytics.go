// Derived read-only analytics computed with SQL aggregates over the detail
// tables. Analytics are presentation enrichments: when the engine is
// unavailable or a query fails, the base data still renders.
package datasync

import (
	"github.com/atlaseng/fieldbook/pkg/types"
)

// projectAnalyticsQuery aggregates one project's detail rows.
const projectAnalyticsQuery = `SELECT
    (SELECT COUNT(*) FROM boq_items WHERE project_id = ?1) AS boq_item_count,
    (SELECT COUNT(*) FROM rfis WHERE project_id = ?1 AND status = 'open') AS open_rfi_count,
    (SELECT COUNT(*) FROM rfis WHERE project_id = ?1 AND status = 'approved') AS approved_rfi_count,
    (SELECT COUNT(*) FROM lab_tests WHERE project_id = ?1 AND result = 'pass') AS passed_lab_tests,
    (SELECT COUNT(*) FROM lab_tests WHERE project_id = ?1 AND result = 'fail') AS failed_lab_tests,
    (SELECT COALESCE(AVG(progress), 0) FROM schedule_tasks WHERE project_id = ?1) AS avg_schedule_progress`

// projectReportsQuery flattens one row of aggregate counts per project.
const projectReportsQuery = `SELECT
    p.id, p.name, p.code, p.status,
    (SELECT COUNT(*) FROM messages m WHERE m.project_id = p.id) AS message_count,
    (SELECT COUNT(*) FROM boq_items b WHERE b.project_id = p.id) AS boq_item_count,
    (SELECT COUNT(*) FROM rfis r WHERE r.project_id = p.id) AS rfi_count,
    (SELECT COUNT(*) FROM lab_tests t WHERE t.project_id = p.id) AS lab_test_count,
    (SELECT COUNT(*) FROM schedule_tasks s WHERE s.project_id = p.id) AS task_count,
    (SELECT COUNT(*) FROM daily_reports d WHERE d.project_id = p.id) AS report_count
FROM projects p
ORDER BY p.name`

// userReportsQuery flattens one row of message counts per user.
const userReportsQuery = `SELECT
    u.id, u.name, u.role,
    (SELECT COUNT(*) FROM messages m WHERE m.sender_id = u.id) AS sent_count,
    (SELECT COUNT(*) FROM messages m WHERE m.receiver_id = u.id) AS received_count,
    (SELECT COUNT(*) FROM messages m WHERE m.receiver_id = u.id AND m.read_status = 0) AS unread_count
FROM users u
ORDER BY u.name`

// ProjectsWithAnalytics returns the engine's project rows with per-project
// aggregates attached. When the engine is unavailable the key-value project
// collection is returned unscored; analytics absence never prevents the base
// list from rendering.
func (s *Service) ProjectsWithAnalytics() ([]types.ProjectWithAnalytics, error) {
	if !s.engineReady() {
		return s.projectsWithoutAnalytics()
	}

	projects, err := s.repo.AllProjects()
	if err != nil {
		s.logger.Printf("analytics unavailable, serving key-value projects: %v", err)
		return s.projectsWithoutAnalytics()
	}

	out := make([]types.ProjectWithAnalytics, 0, len(projects))
	for _, p := range projects {
		entry := types.ProjectWithAnalytics{Project: p}
		rows, err := s.eng.ExecuteQuery(projectAnalyticsQuery, p.ID)
		if err != nil || len(rows) == 0 {
			if err != nil {
				s.logger.Printf("analytics for project %s failed: %v", p.ID, err)
			}
			out = append(out, entry)
			continue
		}
		row := rows[0]
		entry.Analytics = &types.ProjectAnalytics{
			BoqItemCount:        asInt(row["boq_item_count"]),
			OpenRfiCount:        asInt(row["open_rfi_count"]),
			ApprovedRfiCount:    asInt(row["approved_rfi_count"]),
			PassedLabTests:      asInt(row["passed_lab_tests"]),
			FailedLabTests:      asInt(row["failed_lab_tests"]),
			AvgScheduleProgress: asFloat(row["avg_schedule_progress"]),
		}
		out = append(out, entry)
	}
	return out, nil
}

// projectsWithoutAnalytics serves the raw key-value projects unscored.
func (s *Service) projectsWithoutAnalytics() ([]types.ProjectWithAnalytics, error) {
	projects, err := s.kv.Projects()
	if err != nil {
		return nil, err
	}
	out := make([]types.ProjectWithAnalytics, 0, len(projects))
	for _, p := range projects {
		out = append(out, types.ProjectWithAnalytics{Project: p})
	}
	return out, nil
}

// ProjectReports returns one flattened aggregate row per project. A failed
// query yields an empty collection, not an error.
func (s *Service) ProjectReports() []types.ProjectReport {
	if !s.engineReady() {
		return []types.ProjectReport{}
	}
	rows, err := s.eng.ExecuteQuery(projectReportsQuery)
	if err != nil {
		s.logger.Printf("project reports query failed: %v", err)
		return []types.ProjectReport{}
	}

	out := make([]types.ProjectReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.ProjectReport{
			ProjectID:    asString(row["id"]),
			Name:         asString(row["name"]),
			Code:         asString(row["code"]),
			Status:       asString(row["status"]),
			MessageCount: asInt(row["message_count"]),
			BoqItemCount: asInt(row["boq_item_count"]),
			RfiCount:     asInt(row["rfi_count"]),
			LabTestCount: asInt(row["lab_test_count"]),
			TaskCount:    asInt(row["task_count"]),
			ReportCount:  asInt(row["report_count"]),
		})
	}
	return out
}

// UserReports returns one flattened message-count row per user. A failed
// query yields an empty collection, not an error.
func (s *Service) UserReports() []types.UserReport {
	if !s.engineReady() {
		return []types.UserReport{}
	}
	rows, err := s.eng.ExecuteQuery(userReportsQuery)
	if err != nil {
		s.logger.Printf("user reports query failed: %v", err)
		return []types.UserReport{}
	}

	out := make([]types.UserReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.UserReport{
			UserID:        asString(row["id"]),
			Name:          asString(row["name"]),
			Role:          types.Role(asString(row["role"])),
			SentCount:     asInt(row["sent_count"]),
			ReceivedCount: asInt(row["received_count"]),
			UnreadCount:   asInt(row["unread_count"]),
		})
	}
	return out
}

// Scan-value coercion helpers. SQLite aggregates come back as int64 or
// float64 depending on the expression.

func asInt(v any) int {
	switch val := v.(type) {
	case int64:
		return int(val)
	case int:
		return val
	case float64:
		return int(val)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	default:
		return 0
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
