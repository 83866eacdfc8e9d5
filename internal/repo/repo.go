package repo

import (
	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// Repo exposes canned queries per entity over the generic table layer.
// Single-item lookups return types.ErrNotFound for absence; they never
// treat it as an exceptional condition.
type Repo struct {
	eng *engine.Engine
}

// New creates a repository over an opened engine.
func New(eng *engine.Engine) *Repo {
	return &Repo{eng: eng}
}

// decodeRows hydrates a slice of engine records through an entity mapping.
func decodeRows[T any](m EntityMapping, rows []engine.Record) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var entity T
		if err := m.FromRow(row, &entity); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// decodeOne hydrates exactly one record, mapping an empty result set to
// ErrNotFound.
func decodeOne[T any](m EntityMapping, rows []engine.Record) (T, error) {
	var entity T
	if len(rows) == 0 {
		return entity, types.ErrNotFound
	}
	if err := m.FromRow(rows[0], &entity); err != nil {
		return entity, err
	}
	return entity, nil
}

// AllProjects returns every project row.
func (r *Repo) AllProjects() ([]types.Project, error) {
	rows, err := r.eng.Select(ProjectMapping.Table, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRows[types.Project](ProjectMapping, rows)
}

// ProjectByID returns one project or ErrNotFound.
func (r *Repo) ProjectByID(id string) (types.Project, error) {
	rows, err := r.eng.Select(ProjectMapping.Table, nil, "id = ?", id)
	if err != nil {
		return types.Project{}, err
	}
	return decodeOne[types.Project](ProjectMapping, rows)
}

// AllUsers returns every user row.
func (r *Repo) AllUsers() ([]types.User, error) {
	rows, err := r.eng.Select(UserMapping.Table, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRows[types.User](UserMapping, rows)
}

// UserByID returns one user or ErrNotFound.
func (r *Repo) UserByID(id string) (types.User, error) {
	rows, err := r.eng.Select(UserMapping.Table, nil, "id = ?", id)
	if err != nil {
		return types.User{}, err
	}
	return decodeOne[types.User](UserMapping, rows)
}

// AllMessages returns every message row.
func (r *Repo) AllMessages() ([]types.Message, error) {
	rows, err := r.eng.Select(MessageMapping.Table, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRows[types.Message](MessageMapping, rows)
}

// MessagesByProject returns the messages scoped to one project.
func (r *Repo) MessagesByProject(projectID string) ([]types.Message, error) {
	rows, err := r.eng.Select(MessageMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.Message](MessageMapping, rows)
}

// BoqItemsByProject reads the dedicated boq_items table. The table holds
// rows only after the detail projection has run; the JSON blob on the
// project row stays authoritative.
func (r *Repo) BoqItemsByProject(projectID string) ([]types.BoqItem, error) {
	rows, err := r.eng.Select(BoqItemMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.BoqItem](BoqItemMapping, rows)
}

// RfisByProject reads the dedicated rfis table.
func (r *Repo) RfisByProject(projectID string) ([]types.Rfi, error) {
	rows, err := r.eng.Select(RfiMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.Rfi](RfiMapping, rows)
}

// LabTestsByProject reads the dedicated lab_tests table.
func (r *Repo) LabTestsByProject(projectID string) ([]types.LabTest, error) {
	rows, err := r.eng.Select(LabTestMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.LabTest](LabTestMapping, rows)
}

// ScheduleTasksByProject reads the dedicated schedule_tasks table.
func (r *Repo) ScheduleTasksByProject(projectID string) ([]types.ScheduleTask, error) {
	rows, err := r.eng.Select(ScheduleTaskMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.ScheduleTask](ScheduleTaskMapping, rows)
}

// DailyReportsByProject reads the dedicated daily_reports table.
func (r *Repo) DailyReportsByProject(projectID string) ([]types.DailyReport, error) {
	rows, err := r.eng.Select(DailyReportMapping.Table, nil, "project_id = ?", projectID)
	if err != nil {
		return nil, err
	}
	return decodeRows[types.DailyReport](DailyReportMapping, rows)
}
