package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmoraes/inscrito/internal/model"
)

func writeEventsFixture(t *testing.T, dir, content string) *Store {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "events.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

func TestLoadEvents_NormalizesRosterKeys(t *testing.T) {
	dir := t.TempDir()
	s := writeEventsFixture(t, dir, `{
		"eventos": [],
		"inscricoes": {
			" Workshop ": [
				{"id": 1, "id_aluno": "1", "nome": "Ana", "email": "ana@example.com"}
			]
		}
	}`)

	doc, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() failed: %v", err)
	}

	if _, ok := doc.Rosters[" Workshop "]; ok {
		t.Error("raw key survived normalization")
	}
	roster, ok := doc.Rosters["workshop"]
	if !ok {
		t.Fatal("normalized key not found")
	}
	if len(roster) != 1 || roster[0].Name != "Ana" {
		t.Errorf("unexpected roster under normalized key: %+v", roster)
	}
}

func TestLoadEvents_MergesCollidingKeysAndRenumbers(t *testing.T) {
	dir := t.TempDir()
	s := writeEventsFixture(t, dir, `{
		"eventos": [],
		"inscricoes": {
			"Workshop": [
				{"id": 1, "id_aluno": "1", "nome": "Ana", "email": "ana@example.com"}
			],
			"workshop ": [
				{"id": 1, "id_aluno": "2", "nome": "Bia", "email": "bia@example.com"}
			]
		}
	}`)

	doc, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() failed: %v", err)
	}

	if len(doc.Rosters) != 1 {
		t.Fatalf("expected 1 merged roster, got %d", len(doc.Rosters))
	}
	roster := doc.Rosters["workshop"]
	if len(roster) != 2 {
		t.Fatalf("expected 2 merged records, got %d", len(roster))
	}
	for i, rec := range roster {
		if rec.ID != i+1 {
			t.Errorf("record %d has id %d after merge, want %d", i, rec.ID, i+1)
		}
	}
}

func TestLoadEvents_RenumbersGappedRoster(t *testing.T) {
	dir := t.TempDir()
	s := writeEventsFixture(t, dir, `{
		"eventos": [],
		"inscricoes": {
			"workshop": [
				{"id": 2, "id_aluno": "1", "nome": "Ana", "email": "ana@example.com"},
				{"id": 5, "id_aluno": "2", "nome": "Bia", "email": "bia@example.com"}
			]
		}
	}`)

	doc, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() failed: %v", err)
	}
	roster := doc.Rosters["workshop"]
	if roster[0].ID != 1 || roster[1].ID != 2 {
		t.Errorf("gapped roster was not renumbered: %+v", roster)
	}
}

func TestLoadEvents_NilSlicesBecomeEmpty(t *testing.T) {
	dir := t.TempDir()
	s := writeEventsFixture(t, dir, `{
		"eventos": [
			{"nome": "Workshop", "data": "01/01/2099", "descricao": "", "vagas": 5, "inscritos": []}
		],
		"inscricoes": {}
	}`)

	doc, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() failed: %v", err)
	}
	if doc.Events[0].Enrolled == nil {
		t.Error("Enrolled slice is nil after load")
	}
}

func TestSaveEvents_RoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	doc := model.NewEventsDocument()
	doc.Events = append(doc.Events, model.Event{
		Name:        "Workshop Go",
		Date:        "01/01/2099",
		Description: "intro",
		Capacity:    10,
		Enrolled:    []model.Summary{{StudentID: "1", Name: "Ana"}},
		Status:      model.StatusAvailable,
	})
	doc.Rosters["workshop go"] = []model.EnrollmentRecord{
		{ID: 1, StudentID: "1", Name: "Ana", Email: "ana@example.com"},
	}

	if err := s.SaveEvents(doc); err != nil {
		t.Fatalf("SaveEvents() failed: %v", err)
	}

	got, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents() failed: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "Workshop Go" {
		t.Fatalf("round trip lost events: %+v", got.Events)
	}
	if got.Events[0].Status != model.StatusAvailable {
		t.Errorf("status not persisted: %q", got.Events[0].Status)
	}
	if len(got.Rosters["workshop go"]) != 1 {
		t.Errorf("round trip lost roster: %+v", got.Rosters)
	}
}

func TestLoadProfiles_FillsIDsFromKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coordinators.json")
	content := `{
		"3": {"nome": "Carla", "email": "carla@example.com", "eventos_inscritos": []}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	m, err := s.LoadCoordinators()
	if err != nil {
		t.Fatalf("LoadCoordinators() failed: %v", err)
	}
	if m["3"].ID != "3" {
		t.Errorf("profile ID = %q, want 3", m["3"].ID)
	}
	if m["3"].Events == nil {
		t.Error("Events slice is nil after load")
	}
}

func TestSaveStudents_RoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	in := model.ProfileMap{
		"1": {ID: "1", Name: "Ana", Email: "ana@example.com", Course: "CS", Events: []string{"Workshop"}},
	}
	if err := s.SaveStudents(in); err != nil {
		t.Fatalf("SaveStudents() failed: %v", err)
	}

	got, err := s.LoadStudents()
	if err != nil {
		t.Fatalf("LoadStudents() failed: %v", err)
	}
	p := got["1"]
	if p == nil || p.Name != "Ana" || p.Course != "CS" || len(p.Events) != 1 {
		t.Errorf("round trip mismatch: %+v", p)
	}
}
