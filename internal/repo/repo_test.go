// Tests for the canned entity queries over a live engine.
package repo

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/pkg/types"
)

func openTestRepo(t *testing.T) (*engine.Engine, *Repo) {
	t.Helper()
	dataDir := t.TempDir()
	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	eng, err := engine.Open(kv, dataDir, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("opening engine: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng, New(eng)
}

func insertEntity(t *testing.T, eng *engine.Engine, m EntityMapping, entity any) {
	t.Helper()
	rec, err := m.ToRow(entity)
	if err != nil {
		t.Fatalf("ToRow failed: %v", err)
	}
	if err := eng.Insert(m.Table, rec); err != nil {
		t.Fatalf("Insert into %s failed: %v", m.Table, err)
	}
}

func TestUserByID(t *testing.T) {
	eng, r := openTestRepo(t)
	insertEntity(t, eng, UserMapping, types.User{ID: "u1", Name: "Sana", Email: "sana@example.com", Role: types.RoleAdmin})

	u, err := r.UserByID("u1")
	if err != nil {
		t.Fatalf("UserByID failed: %v", err)
	}
	if u.Name != "Sana" || u.Role != types.RoleAdmin {
		t.Errorf("user mismatch: %+v", u)
	}
}

func TestUserByID_NotFound(t *testing.T) {
	_, r := openTestRepo(t)

	_, err := r.UserByID("missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllProjects_HydratesNestedCollections(t *testing.T) {
	eng, r := openTestRepo(t)
	insertEntity(t, eng, ProjectMapping, types.Project{
		ID:   "proj-1",
		Name: "Ring Road",
		Boq:  []types.BoqItem{{ID: "b1", ItemNo: "1.01", Quantity: 500}},
		Rfis: []types.Rfi{{ID: "r1", Number: "RFI-001", Status: types.RfiStatusOpen}},
	})

	projects, err := r.AllProjects()
	if err != nil {
		t.Fatalf("AllProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if len(p.Boq) != 1 || p.Boq[0].Quantity != 500 {
		t.Errorf("BOQ blob not hydrated: %+v", p.Boq)
	}
	if len(p.Rfis) != 1 || p.Rfis[0].Status != types.RfiStatusOpen {
		t.Errorf("RFI blob not hydrated: %+v", p.Rfis)
	}
}

func TestProjectByID_NotFound(t *testing.T) {
	_, r := openTestRepo(t)

	_, err := r.ProjectByID("missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessagesByProject(t *testing.T) {
	eng, r := openTestRepo(t)
	insertEntity(t, eng, MessageMapping, types.Message{ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "a", ProjectID: "proj-1"})
	insertEntity(t, eng, MessageMapping, types.Message{ID: "m2", SenderID: "u2", ReceiverID: "u1", Content: "b", ProjectID: "proj-2"})

	msgs, err := r.MessagesByProject("proj-1")
	if err != nil {
		t.Fatalf("MessagesByProject failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m1" {
		t.Errorf("expected only the proj-1 message, got %+v", msgs)
	}
}

func TestDetailTablesByProject(t *testing.T) {
	eng, r := openTestRepo(t)
	insertEntity(t, eng, BoqItemMapping, types.BoqItem{ID: "b1", ProjectID: "proj-1", ItemNo: "1.01", Quantity: 500})
	insertEntity(t, eng, BoqItemMapping, types.BoqItem{ID: "b2", ProjectID: "proj-2", ItemNo: "2.01"})
	insertEntity(t, eng, LabTestMapping, types.LabTest{ID: "t1", ProjectID: "proj-1", Result: types.LabResultPass})
	insertEntity(t, eng, ScheduleTaskMapping, types.ScheduleTask{ID: "s1", ProjectID: "proj-1", Progress: 40, DependsOn: []string{"s0"}})

	items, err := r.BoqItemsByProject("proj-1")
	if err != nil {
		t.Fatalf("BoqItemsByProject failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b1" {
		t.Errorf("expected only proj-1 BOQ items, got %+v", items)
	}

	tests, err := r.LabTestsByProject("proj-1")
	if err != nil {
		t.Fatalf("LabTestsByProject failed: %v", err)
	}
	if len(tests) != 1 || tests[0].Result != types.LabResultPass {
		t.Errorf("lab test mismatch: %+v", tests)
	}

	tasks, err := r.ScheduleTasksByProject("proj-1")
	if err != nil {
		t.Fatalf("ScheduleTasksByProject failed: %v", err)
	}
	if len(tasks) != 1 || len(tasks[0].DependsOn) != 1 {
		t.Errorf("schedule task mismatch: %+v", tasks)
	}
}

func TestAllUsers_EmptyTable(t *testing.T) {
	_, r := openTestRepo(t)

	users, err := r.AllUsers()
	if err != nil {
		t.Fatalf("AllUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}
}
