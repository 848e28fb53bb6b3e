package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/conductor-agent/conductor/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func testRun(id string, startedAt time.Time) *models.RunRecord {
	return &models.RunRecord{
		ID:         id,
		Goal:       "Launch an eco-friendly water bottle",
		Status:     models.RunStatusCompleted,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(30 * time.Second),
		Results: models.ResultMap{
			"ResearchAgent":    "Market research findings.",
			"CopywritingAgent": "Ad copy draft.",
		},
		InputTokens:  1200,
		OutputTokens: 800,
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("Second Migrate failed: %v", err)
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	saved := testRun("run-1", time.Now().Add(-time.Minute))
	if err := db.SaveRun(saved); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for existing run")
	}

	if got.Goal != saved.Goal {
		t.Errorf("Goal = %q, want %q", got.Goal, saved.Goal)
	}
	if got.Status != models.RunStatusCompleted {
		t.Errorf("Status = %q", got.Status)
	}
	if got.InputTokens != 1200 || got.OutputTokens != 800 {
		t.Errorf("Tokens = (%d, %d)", got.InputTokens, got.OutputTokens)
	}
	if len(got.Results) != 2 {
		t.Fatalf("Results has %d entries, want 2", len(got.Results))
	}
	if got.Results["ResearchAgent"] != "Market research findings." {
		t.Errorf("ResearchAgent result = %q", got.Results["ResearchAgent"])
	}
}

func TestSaveRun_FailedRunWithoutResults(t *testing.T) {
	db := openTestDB(t)

	rec := testRun("run-failed", time.Now())
	rec.Status = models.RunStatusFailed
	rec.Error = "unknown agent \"PricingAgent\" in plan"
	rec.Results = nil

	if err := db.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := db.GetRun("run-failed")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Status != models.RunStatusFailed {
		t.Errorf("Status = %q", got.Status)
	}
	if got.Error == "" {
		t.Error("Error message should survive the round trip")
	}
	if len(got.Results) != 0 {
		t.Errorf("Expected no results, got %d", len(got.Results))
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetRun("missing")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing run, got %+v", got)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		rec := testRun(id, base.Add(time.Duration(i)*time.Minute))
		if err := db.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" || runs[2].ID != "run-a" {
		t.Errorf("Order = [%s %s %s], want newest first", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	limited, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
	if limited[0].ID != "run-c" {
		t.Errorf("Limited list should start with the newest run, got %s", limited[0].ID)
	}
}

func TestPurgeRuns(t *testing.T) {
	db := openTestDB(t)

	old := testRun("run-old", time.Now().Add(-48*time.Hour))
	recent := testRun("run-recent", time.Now().Add(-time.Hour))
	for _, rec := range []*models.RunRecord{old, recent} {
		if err := db.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	deleted, err := db.PurgeRuns(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeRuns failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Deleted %d runs, want 1", deleted)
	}

	gone, err := db.GetRun("run-old")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if gone != nil {
		t.Error("Old run should have been purged")
	}

	kept, err := db.GetRun("run-recent")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if kept == nil {
		t.Error("Recent run should survive the purge")
	}
}
