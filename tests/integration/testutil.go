// Package integration exercises the full persistence stack end to end:
// key-value store, relational engine, repositories, and the sync service
// wired together against a real data directory.
package integration

import (
	"io"
	"log"
	"testing"

	"github.com/atlaseng/fieldbook/internal/datasync"
	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/internal/repo"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// TestEnv holds the wired stack over one data directory.
type TestEnv struct {
	DataDir string
	KV      *kvstore.Store
	Engine  *engine.Engine
	Repo    *repo.Repo
	Sync    *datasync.Service

	t *testing.T
}

// NewTestEnv opens the full stack in a fresh temp directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return openEnv(t, t.TempDir())
}

// Reopen closes the engine and opens the whole stack again over the same data
// directory, simulating a process restart.
func (env *TestEnv) Reopen() *TestEnv {
	env.t.Helper()
	if err := env.Engine.Close(); err != nil {
		env.t.Fatalf("closing engine before reopen: %v", err)
	}
	return openEnv(env.t, env.DataDir)
}

func openEnv(t *testing.T, dataDir string) *TestEnv {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	eng, err := engine.Open(kv, dataDir, logger)
	if err != nil {
		t.Fatalf("opening engine: %v", err)
	}
	t.Cleanup(func() { eng.Close() })

	return &TestEnv{
		DataDir: dataDir,
		KV:      kv,
		Engine:  eng,
		Repo:    repo.New(eng),
		Sync:    datasync.New(kv, eng, logger),
		t:       t,
	}
}

// SampleProjects returns a small realistic project set with nested detail
// collections.
func SampleProjects() []types.Project {
	return []types.Project{
		{
			ID:            "proj-ring-road",
			Name:          "Kabul Ring Road Upgrade",
			Code:          "KRR-2024-01",
			Province:      "Kabul",
			Client:        "Ministry of Public Works",
			Contractor:    "Atlas Engineering",
			ContractNo:    "CN-2024-017",
			ContractValue: 4800000,
			Currency:      "USD",
			StartDate:     "2024-03-01",
			EndDate:       "2025-09-30",
			Status:        types.ProjectStatusActive,
			Progress:      42.5,
			Boq: []types.BoqItem{
				{ID: "boq-1", ItemNo: "1.01", Description: "Site clearance", Unit: "m2", Quantity: 12000, UnitRate: 0.8, TotalPrice: 9600},
				{ID: "boq-2", ItemNo: "2.03", Description: "Subbase course", Unit: "m3", Quantity: 4500, UnitRate: 18.5, TotalPrice: 83250, ExecutedQty: 1900},
			},
			Rfis: []types.Rfi{
				{ID: "rfi-1", Number: "RFI-001", Title: "Culvert invert level", Status: types.RfiStatusOpen, SubmittedDate: "2024-05-10"},
				{ID: "rfi-2", Number: "RFI-002", Title: "Asphalt mix design", Status: types.RfiStatusApproved, SubmittedDate: "2024-04-02", ResponseDate: "2024-04-09"},
			},
			LabTests: []types.LabTest{
				{ID: "lab-1", TestType: "Proctor compaction", Material: "Subbase", Result: types.LabResultPass, TestDate: "2024-05-12"},
				{ID: "lab-2", TestType: "CBR", Material: "Subgrade", Result: types.LabResultFail, TestDate: "2024-05-14"},
			},
			Schedule: []types.ScheduleTask{
				{ID: "task-1", Name: "Earthworks", StartDate: "2024-03-15", EndDate: "2024-07-01", Progress: 80},
				{ID: "task-2", Name: "Pavement", StartDate: "2024-06-15", EndDate: "2025-02-01", Progress: 20, DependsOn: []string{"task-1"}},
			},
			DailyReports: []types.DailyReport{
				{ID: "rep-1", Date: "2024-05-20", Weather: "clear", LaborCount: 45, EquipmentCount: 12, WorkDescription: "Subbase laying km 3+200 to 3+650"},
			},
		},
		{
			ID:       "proj-clinic",
			Name:     "District Clinic Construction",
			Code:     "DCC-2024-02",
			Province: "Herat",
			Status:   types.ProjectStatusPlanning,
		},
	}
}

// SampleUsers returns a user per role of interest.
func SampleUsers() []types.User {
	return []types.User{
		{ID: "user-admin", Name: "Administrator", Email: "admin@fieldbook.local", Role: types.RoleAdmin},
		{ID: "user-pm", Name: "Farid Ahmadi", Email: "farid@example.com", Role: types.RoleProjectManager},
		{ID: "user-lab", Name: "Zahra Husseini", Email: "zahra@example.com", Role: types.RoleLabTechnician},
	}
}

// SampleMessages returns messages between the sample users.
func SampleMessages() []types.Message {
	return []types.Message{
		{ID: "msg-1", SenderID: "user-pm", ReceiverID: "user-lab", Content: "CBR retest needed at km 4+100", Timestamp: "2024-05-15T08:30:00Z", ProjectID: "proj-ring-road"},
		{ID: "msg-2", SenderID: "user-lab", ReceiverID: "user-pm", Content: "Scheduled for tomorrow", Timestamp: "2024-05-15T09:10:00Z", Read: true, ProjectID: "proj-ring-road"},
		{ID: "msg-3", SenderID: "user-admin", ReceiverID: "user-pm", Content: "Monthly report due Friday", Timestamp: "2024-05-16T07:00:00Z"},
	}
}
