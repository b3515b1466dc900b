package storage

import (
	"path/filepath"
	"testing"

	"github.com/cogitolab/cogito/internal/core"
)

func setupStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Initialize(); err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}
	return store
}

func TestSQLiteStorage(t *testing.T) {
	store := setupStorage(t)

	req := NewDecisionRequest("Should we adopt microservices?")
	if err := store.CreateRequest(req); err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	t.Run("GetRequest", func(t *testing.T) {
		got, err := store.GetRequest(req.ID)
		if err != nil {
			t.Fatalf("failed to get request: %v", err)
		}
		if got == nil || got.Topic != req.Topic {
			t.Errorf("unexpected request: %+v", got)
		}
	})

	t.Run("GetRequestMissing", func(t *testing.T) {
		got, err := store.GetRequest("no-such-id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for missing request, got %+v", got)
		}
	})

	t.Run("SaveAndGetReport", func(t *testing.T) {
		matrix := &core.DebateResult{
			Thesis:    &core.Argument{Title: "Pro", Points: []string{"A"}},
			Synthesis: &core.Synthesis{Recommendation: "Go", Summary: "ok", Confidence: 70},
		}
		report := NewDebateReport(req.ID, matrix)
		if err := store.SaveReport(report); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		got, err := store.GetReportByRequest(req.ID)
		if err != nil {
			t.Fatalf("failed to get report: %v", err)
		}
		if got == nil || got.Matrix == nil {
			t.Fatal("report or matrix missing")
		}
		if got.Matrix.Synthesis.Confidence != 70 {
			t.Errorf("matrix did not round-trip: %+v", got.Matrix)
		}
	})

	t.Run("Logs", func(t *testing.T) {
		for _, role := range []string{"thesis", "antithesis", "synthesist"} {
			if err := store.AddLog(NewDebateLog(req.ID, role, "argument from "+role)); err != nil {
				t.Fatalf("failed to add log: %v", err)
			}
		}

		logs, err := store.GetLogs(req.ID)
		if err != nil {
			t.Fatalf("failed to get logs: %v", err)
		}
		if len(logs) != 3 {
			t.Fatalf("expected 3 logs, got %d", len(logs))
		}
		if logs[0].AgentRole != "thesis" {
			t.Errorf("logs out of order: %v", logs[0].AgentRole)
		}
	})

	t.Run("ListReports", func(t *testing.T) {
		summaries, err := store.ListReports(10, 0)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].Topic != req.Topic || summaries[0].Confidence != 70 {
			t.Errorf("unexpected summary: %+v", summaries[0])
		}
	})
}
