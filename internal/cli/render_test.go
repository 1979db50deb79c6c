package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
)

// Golden files live in testdata/golden. Regenerate with:
//
//	go test ./internal/cli -update

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderEvents(t *testing.T) {
	events := []model.Event{
		{
			Name:        "Go Workshop",
			Date:        "01/10/2026",
			Description: "Hands-on Go",
			Capacity:    30,
			Status:      model.StatusAvailable,
			Enrolled:    []model.Summary{{StudentID: "1", Name: "Ana"}},
		},
		{
			Name:     "Data Conference",
			Date:     "05/03/2024",
			Capacity: 100,
			Status:   model.StatusFinished,
			Enrolled: []model.Summary{},
		},
	}
	newGoldie(t).Assert(t, "events_list", []byte(renderEvents(events)))
}

func TestRenderEventsEmpty(t *testing.T) {
	if got := renderEvents(nil); got != "no events\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderRoster(t *testing.T) {
	roster := []model.EnrollmentRecord{
		{ID: 1, StudentID: "1", Name: "Ana Lima", Email: "ana@example.com"},
		{ID: 2, StudentID: "2", Name: "Bruno Reis", Email: "bruno@example.com"},
	}
	newGoldie(t).Assert(t, "roster", []byte(renderRoster("Go Workshop", roster)))
}

func TestRenderProfiles(t *testing.T) {
	profiles := []model.Profile{
		{ID: "1", Name: "Ana Lima", Email: "ana@example.com", Events: []string{"Go Workshop"}},
		{ID: "2", Name: "Bruno Reis", Email: "bruno@example.com", Events: []string{}},
	}
	newGoldie(t).Assert(t, "profiles", []byte(renderProfiles(model.RoleStudent, profiles)))
}

func TestRenderHistory(t *testing.T) {
	entries := []journal.Entry{
		{Seq: 1, Op: journal.OpEventCreated, Entity: "event", EntityKey: "go workshop"},
		{Seq: 2, Op: journal.OpEnrolled, Entity: "event", EntityKey: "go workshop"},
	}
	newGoldie(t).Assert(t, "history", []byte(renderHistory(entries)))
}
