package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseMemberRows(t *testing.T) {
	input := `email,name,joined_at
Ana.Garcia@example.com,Ana García,2024-03-15
luis@example.com,Luis Pérez,2023-11-02
`
	rows, err := parseMemberRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Email != "ana.garcia@example.com" {
		t.Errorf("email not lowercased: %q", rows[0].Email)
	}
	if rows[0].Name != "Ana García" {
		t.Errorf("name = %q", rows[0].Name)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !rows[0].JoinedAt.Equal(want) {
		t.Errorf("joined_at = %v, want %v", rows[0].JoinedAt, want)
	}
}

func TestParseMemberRowsBadDate(t *testing.T) {
	input := "email,name,joined_at\nana@example.com,Ana,15/03/2024\n"
	if _, err := parseMemberRows(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for bad date")
	}
}

func TestParseSetRows(t *testing.T) {
	input := `email,date,exercise,set_number,weight_kg,reps,rir
ana@example.com,2024-06-01,Press banca,1,60,8,2
ana@example.com,2024-06-01,Press banca,2,62.5,6,
ana@example.com,not-a-date,Press banca,3,65,5,1
`
	rows, errored, err := parseSetRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errored != 1 {
		t.Errorf("errored = %d, want 1", errored)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].SetNumber != 1 || rows[0].WeightKg != 60 || rows[0].Reps != 8 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].RIR == nil || *rows[0].RIR != 2 {
		t.Errorf("row 0 rir = %v, want 2", rows[0].RIR)
	}
	if rows[1].RIR != nil {
		t.Errorf("row 1 rir = %v, want nil for empty column", *rows[1].RIR)
	}
	if rows[1].WeightKg != 62.5 {
		t.Errorf("row 1 weight = %v, want 62.5", rows[1].WeightKg)
	}
}

func TestParseSetRecordShortRow(t *testing.T) {
	_, err := parseSetRecord([]string{"ana@example.com", "2024-06-01", "Press banca"})
	if err == nil {
		t.Fatal("expected error for short record")
	}
}

func TestStateDBRoundTrip(t *testing.T) {
	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("members/2024.csv", 120, "abc123")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("fresh state db reports file as imported")
	}

	if err := state.MarkImported("members/2024.csv", 120, "abc123"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	done, err = state.IsImported("members/2024.csv", 120, "abc123")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !done {
		t.Error("marked file not reported as imported")
	}

	// Same path but different content must re-import.
	done, err = state.IsImported("members/2024.csv", 121, "def456")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("changed file reported as imported")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}
}
