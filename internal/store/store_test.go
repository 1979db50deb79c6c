package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_SeedsEmptyDocuments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// All three documents must exist on disk after Open, so that loads
	// never have to special-case a missing file.
	for _, name := range []string{"events.json", "students.json", "coordinators.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("document %s was not seeded: %v", name, err)
		}
	}

	doc, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() after seed failed: %v", err)
	}
	if len(doc.Events) != 0 {
		t.Errorf("seeded events document not empty: %d events", len(doc.Events))
	}
	if doc.Rosters == nil {
		t.Error("seeded rosters map is nil")
	}

	students, err := s.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents() after seed failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("seeded students document not empty: %d profiles", len(students))
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		if _, err := Open(dir); err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
	}
}

func TestOpen_PreservesExistingDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.json")

	existing := `{"1": {"nome": "Ana", "email": "ana@example.com", "eventos_inscritos": []}}` + "\n"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	students, err := s.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents() failed: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(students))
	}
	if students["1"].Name != "Ana" {
		t.Errorf("profile name = %q, want Ana", students["1"].Name)
	}
}

func TestOpen_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "data")

	if _, err := Open(dir); err != nil {
		t.Fatalf("Open() with nested directory failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}
