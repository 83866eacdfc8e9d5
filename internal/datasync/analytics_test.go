// Tests for the derived analytics views.
package datasync

import (
	"testing"

	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/pkg/types"
)

func TestProjectsWithAnalytics(t *testing.T) {
	kv, _, svc := openTestService(t)
	seedKV(t, kv)

	if failures := svc.SyncAllToEngine(); len(failures) != 0 {
		t.Fatalf("sync failed: %v", failures)
	}
	if err := svc.SyncProjectDetailsToEngine(); err != nil {
		t.Fatalf("detail projection failed: %v", err)
	}

	out, err := svc.ProjectsWithAnalytics()
	if err != nil {
		t.Fatalf("ProjectsWithAnalytics failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(out))
	}

	byID := make(map[string]types.ProjectWithAnalytics, len(out))
	for _, p := range out {
		byID[p.ID] = p
	}

	ringRoad := byID["proj-1"]
	if ringRoad.Analytics == nil {
		t.Fatal("expected analytics for proj-1")
	}
	a := ringRoad.Analytics
	if a.BoqItemCount != 1 {
		t.Errorf("expected 1 BOQ item, got %d", a.BoqItemCount)
	}
	if a.OpenRfiCount != 1 {
		t.Errorf("expected 1 open RFI, got %d", a.OpenRfiCount)
	}
	if a.PassedLabTests != 1 || a.FailedLabTests != 0 {
		t.Errorf("lab test counts mismatch: %+v", a)
	}
	if a.AvgScheduleProgress != 50 {
		t.Errorf("expected avg schedule progress 50, got %v", a.AvgScheduleProgress)
	}

	empty := byID["proj-2"]
	if empty.Analytics == nil {
		t.Fatal("expected analytics for proj-2")
	}
	if empty.Analytics.BoqItemCount != 0 || empty.Analytics.AvgScheduleProgress != 0 {
		t.Errorf("expected zeroed analytics for empty project, got %+v", empty.Analytics)
	}
}

func TestProjectsWithAnalytics_EngineUnavailableFallsBackToKV(t *testing.T) {
	kv, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	if err := kv.SetProjects([]types.Project{{ID: "proj-1", Name: "Ring Road"}}); err != nil {
		t.Fatalf("SetProjects failed: %v", err)
	}
	svc := New(kv, nil, quietLogger())

	out, err := svc.ProjectsWithAnalytics()
	if err != nil {
		t.Fatalf("ProjectsWithAnalytics failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 project from key-value fallback, got %d", len(out))
	}
	if out[0].Name != "Ring Road" {
		t.Errorf("project mismatch: %+v", out[0])
	}
	if out[0].Analytics != nil {
		t.Error("expected nil analytics without an engine")
	}
}

func TestProjectReports(t *testing.T) {
	kv, _, svc := openTestService(t)
	seedKV(t, kv)

	if failures := svc.SyncAllToEngine(); len(failures) != 0 {
		t.Fatalf("sync failed: %v", failures)
	}
	if err := svc.SyncProjectDetailsToEngine(); err != nil {
		t.Fatalf("detail projection failed: %v", err)
	}

	reports := svc.ProjectReports()
	if len(reports) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(reports))
	}

	// Ordered by name: Bridge Repair, then Ring Road.
	if reports[0].Name != "Bridge Repair" || reports[1].Name != "Ring Road" {
		t.Fatalf("unexpected order: %q, %q", reports[0].Name, reports[1].Name)
	}
	rr := reports[1]
	if rr.MessageCount != 2 {
		t.Errorf("expected 2 messages for Ring Road, got %d", rr.MessageCount)
	}
	if rr.BoqItemCount != 1 || rr.RfiCount != 1 || rr.LabTestCount != 1 || rr.TaskCount != 1 {
		t.Errorf("detail counts mismatch: %+v", rr)
	}
}

func TestProjectReports_EngineUnavailable(t *testing.T) {
	kv, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	svc := New(kv, nil, quietLogger())

	if reports := svc.ProjectReports(); len(reports) != 0 {
		t.Errorf("expected empty reports without an engine, got %v", reports)
	}
}

func TestUserReports(t *testing.T) {
	kv, _, svc := openTestService(t)
	seedKV(t, kv)

	if failures := svc.SyncAllToEngine(); len(failures) != 0 {
		t.Fatalf("sync failed: %v", failures)
	}

	reports := svc.UserReports()
	if len(reports) != 1 {
		t.Fatalf("expected 1 user report, got %d", len(reports))
	}
	sana := reports[0]
	if sana.UserID != "u1" || sana.Role != types.RoleAdmin {
		t.Errorf("user report mismatch: %+v", sana)
	}
	// u1 sent m1 and m3, received m2 which is marked read.
	if sana.SentCount != 2 {
		t.Errorf("expected 2 sent, got %d", sana.SentCount)
	}
	if sana.ReceivedCount != 1 {
		t.Errorf("expected 1 received, got %d", sana.ReceivedCount)
	}
	if sana.UnreadCount != 0 {
		t.Errorf("expected 0 unread, got %d", sana.UnreadCount)
	}
}
