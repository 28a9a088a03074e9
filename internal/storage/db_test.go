package storage

import (
	"path/filepath"
	"testing"

	"shopclean/internal"
)

func TestRunsRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stats := internal.RunStats{Processed: 12, Orders: 5, Duplicates: 1, TestOrders: 2}
	if err := db.InsertRun("abc123", stats); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertRun("def456", internal.RunStats{Processed: 3}); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	// Newest first.
	if runs[0].TraceID != "def456" || runs[1].Stats != stats {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestUpsertSuggestionsAccumulates(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	first := []internal.Suggestion{{Code: "MPHJ200", Name: "Hip & Joint Chews", Count: 2}}
	if err := db.UpsertSuggestions(first); err != nil {
		t.Fatal(err)
	}
	again := []internal.Suggestion{{Code: "MPHJ200", Name: "Hip & Joint Chews", Count: 3}}
	if err := db.UpsertSuggestions(again); err != nil {
		t.Fatal(err)
	}

	out, err := db.ListSuggestions()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Count != 5 {
		t.Fatalf("suggestions = %+v", out)
	}
}
