// Package datasync implements the bulk, per-entity, bidirectional projection
// between the key-value store and the relational engine, plus the derived
// analytics views. Syncs are best-effort per entity: one entity's failure is
// logged and the batch continues with the remaining entities. Callers that
// need atomicity across entities must wrap the batch themselves.
package datasync

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/internal/repo"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// Service copies entity collections between the two stores. The engine may
// be nil when initialization failed entirely; every engine-dependent path
// then degrades to the key-value representation.
type Service struct {
	kv     *kvstore.Store
	eng    *engine.Engine
	repo   *repo.Repo
	logger *log.Logger
}

// New creates a sync service. A nil logger gets a default writing to stderr.
func New(kv *kvstore.Store, eng *engine.Engine, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(os.Stderr, "[datasync] ", log.LstdFlags)
	}
	s := &Service{kv: kv, eng: eng, logger: logger}
	if eng != nil {
		s.repo = repo.New(eng)
	}
	return s
}

// engineReady reports whether engine-backed operations can run at all.
func (s *Service) engineReady() bool {
	return s.eng != nil
}

// SyncUsersToEngine copies the key-value user collection into the engine.
func (s *Service) SyncUsersToEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	users, err := s.kv.Users()
	if err != nil {
		return err
	}
	for _, u := range users {
		rec, err := repo.UserMapping.ToRow(u)
		if err != nil {
			return err
		}
		if err := s.eng.Insert(repo.UserMapping.Table, rec); err != nil {
			return fmt.Errorf("user %s: %w", u.ID, err)
		}
	}
	s.logger.Printf("synced %d users to engine", len(users))
	return nil
}

// SyncUsersFromEngine overwrites the key-value user collection from the
// engine rows.
func (s *Service) SyncUsersFromEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	users, err := s.repo.AllUsers()
	if err != nil {
		return err
	}
	if err := s.kv.SetUsers(users); err != nil {
		return err
	}
	s.logger.Printf("synced %d users from engine", len(users))
	return nil
}

// SyncProjectsToEngine copies the key-value project collection into the
// engine. Nested collections land in the JSON blob columns of the projects
// table; the dedicated detail tables are populated only by the explicit
// SyncProjectDetailsToEngine projection.
func (s *Service) SyncProjectsToEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	projects, err := s.kv.Projects()
	if err != nil {
		return err
	}
	for _, p := range projects {
		rec, err := repo.ProjectMapping.ToRow(p)
		if err != nil {
			return err
		}
		if err := s.eng.Insert(repo.ProjectMapping.Table, rec); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}
	s.logger.Printf("synced %d projects to engine", len(projects))
	return nil
}

// SyncProjectsFromEngine overwrites the key-value project collection from
// the engine rows, JSON-decoding the nested blob columns.
func (s *Service) SyncProjectsFromEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	projects, err := s.repo.AllProjects()
	if err != nil {
		return err
	}
	if err := s.kv.SetProjects(projects); err != nil {
		return err
	}
	s.logger.Printf("synced %d projects from engine", len(projects))
	return nil
}

// SyncMessagesToEngine copies the key-value message collection into the
// engine.
func (s *Service) SyncMessagesToEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	messages, err := s.kv.Messages()
	if err != nil {
		return err
	}
	for _, m := range messages {
		rec, err := repo.MessageMapping.ToRow(m)
		if err != nil {
			return err
		}
		if err := s.eng.Insert(repo.MessageMapping.Table, rec); err != nil {
			return fmt.Errorf("message %s: %w", m.ID, err)
		}
	}
	s.logger.Printf("synced %d messages to engine", len(messages))
	return nil
}

// SyncMessagesFromEngine overwrites the key-value message collection from
// the engine rows.
func (s *Service) SyncMessagesFromEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	messages, err := s.repo.AllMessages()
	if err != nil {
		return err
	}
	if err := s.kv.SetMessages(messages); err != nil {
		return err
	}
	s.logger.Printf("synced %d messages from engine", len(messages))
	return nil
}

// SyncSettingsToEngine writes the application settings as the single row of
// the settings table, keyed by the fixed key-value key name.
func (s *Service) SyncSettingsToEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	settings, err := s.kv.Settings()
	if err != nil {
		return err
	}
	rec := engine.Record{"key": kvstore.KeySettings, "value": settings}
	return s.eng.Insert("settings", rec)
}

// SyncSettingsFromEngine overwrites the key-value settings object from the
// settings table row. A missing row is not an error; the stored settings
// stay as they are.
func (s *Service) SyncSettingsFromEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	rows, err := s.eng.Select("settings", nil, "key = ?", kvstore.KeySettings)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	// The value column holds the settings object as JSON text.
	raw, ok := rows[0]["value"].(string)
	if !ok {
		return fmt.Errorf("%w: settings row value is not text", types.ErrSerialization)
	}
	var settings types.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return fmt.Errorf("%w: decoding settings row: %v", types.ErrSerialization, err)
	}
	return s.kv.SetSettings(settings)
}

// syncStep pairs an entity name with its sync function for batch runs.
type syncStep struct {
	entity string
	run    func() error
}

// runBatch executes the steps in order, isolating failures: a failed step is
// recorded and logged, and the batch continues.
func (s *Service) runBatch(steps []syncStep) []types.SyncError {
	var failures []types.SyncError
	for _, step := range steps {
		if err := step.run(); err != nil {
			s.logger.Printf("sync %s failed: %v", step.entity, err)
			failures = append(failures, types.SyncError{Entity: step.entity, Err: err})
		}
	}
	return failures
}

// SyncAllToEngine runs the four per-entity syncs toward the engine in fixed
// order. There is no transactionality across entities; the returned slice
// names the entities that failed, and an empty slice means a clean batch.
func (s *Service) SyncAllToEngine() []types.SyncError {
	return s.runBatch([]syncStep{
		{"users", s.SyncUsersToEngine},
		{"projects", s.SyncProjectsToEngine},
		{"messages", s.SyncMessagesToEngine},
		{"settings", s.SyncSettingsToEngine},
	})
}

// SyncAllFromEngine runs the four per-entity syncs toward the key-value
// store in fixed order, with the same per-entity failure isolation.
func (s *Service) SyncAllFromEngine() []types.SyncError {
	return s.runBatch([]syncStep{
		{"users", s.SyncUsersFromEngine},
		{"projects", s.SyncProjectsFromEngine},
		{"messages", s.SyncMessagesFromEngine},
		{"settings", s.SyncSettingsFromEngine},
	})
}

// Migrate performs the one-time key-value to engine bulk copy. It runs only
// when no engine snapshot is stored yet, so calling it on every start is
// safe. Returns whether the migration ran and the failures of any entities
// that could not be copied.
func (s *Service) Migrate() (bool, []types.SyncError) {
	if snap, ok := s.kv.Get(kvstore.KeySnapshot); ok && snap != "" {
		s.logger.Printf("engine snapshot present, migration skipped")
		return false, nil
	}
	if !s.engineReady() {
		return false, []types.SyncError{{Entity: "all", Err: types.ErrEngineUnavailable}}
	}
	s.logger.Printf("no engine snapshot found, migrating key-value data")
	return true, s.SyncAllToEngine()
}

// SyncProjectDetailsToEngine projects each project's nested collections into
// the dedicated analytics tables (boq_items, rfis, lab_tests,
// schedule_tasks, daily_reports). The JSON blob columns remain the
// authoritative representation; this projection exists so the analytics
// queries have rows to aggregate, and it must be re-run after project
// mutations to stay current.
func (s *Service) SyncProjectDetailsToEngine() error {
	if !s.engineReady() {
		return types.ErrEngineUnavailable
	}
	projects, err := s.kv.Projects()
	if err != nil {
		return err
	}

	for _, p := range projects {
		if err := s.projectDetails(p); err != nil {
			return fmt.Errorf("project %s details: %w", p.ID, err)
		}
	}
	s.logger.Printf("projected detail tables for %d projects", len(projects))
	return nil
}

// projectDetails replaces one project's detail rows.
func (s *Service) projectDetails(p types.Project) error {
	detailTables := []string{
		repo.BoqItemMapping.Table,
		repo.RfiMapping.Table,
		repo.LabTestMapping.Table,
		repo.ScheduleTaskMapping.Table,
		repo.DailyReportMapping.Table,
	}
	for _, table := range detailTables {
		if err := s.eng.Delete(table, "project_id = ?", p.ID); err != nil {
			return err
		}
	}

	for _, item := range p.Boq {
		item.ProjectID = p.ID
		if err := s.insertDetail(repo.BoqItemMapping, item); err != nil {
			return err
		}
	}
	for _, rfi := range p.Rfis {
		rfi.ProjectID = p.ID
		if err := s.insertDetail(repo.RfiMapping, rfi); err != nil {
			return err
		}
	}
	for _, test := range p.LabTests {
		test.ProjectID = p.ID
		if err := s.insertDetail(repo.LabTestMapping, test); err != nil {
			return err
		}
	}
	for _, task := range p.Schedule {
		task.ProjectID = p.ID
		if err := s.insertDetail(repo.ScheduleTaskMapping, task); err != nil {
			return err
		}
	}
	for _, report := range p.DailyReports {
		report.ProjectID = p.ID
		if err := s.insertDetail(repo.DailyReportMapping, report); err != nil {
			return err
		}
	}
	return nil
}

// insertDetail maps one detail entity and inserts it.
func (s *Service) insertDetail(m repo.EntityMapping, entity any) error {
	rec, err := m.ToRow(entity)
	if err != nil {
		return err
	}
	return s.eng.Insert(m.Table, rec)
}
