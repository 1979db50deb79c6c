package engine

import (
	"context"
	"strconv"

	"github.com/dmoraes/inscrito/internal/identity"
	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
)

// Enroll registers the student on the event. All three facets move together:
// the event's embedded summary list, the canonical roster (new record id is
// roster length + 1), and the student's subscription list.
func (e *Engine) Enroll(ctx context.Context, eventName, studentID string) (*model.EnrollmentRecord, error) {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	students, err := e.store.LoadStudents()
	if err != nil {
		return nil, err
	}

	event := doc.FindEvent(identity.NormalizeKey(eventName))
	if event == nil {
		return nil, NewNotFound("event", eventName)
	}
	student, ok := students[studentID]
	if !ok {
		return nil, NewNotFound("student", studentID)
	}

	if event.Full() {
		return nil, &Error{
			Code:    CodeCapacityExceeded,
			Message: "event " + event.Name + " is full",
			Details: map[string]string{"capacity": strconv.Itoa(event.Capacity)},
		}
	}
	if student.Subscribed(event.Name) {
		return nil, newError(CodeAlreadyEnrolled, "student %s is already enrolled in %s", studentID, event.Name)
	}

	key := event.Key()
	roster := doc.Rosters[key]
	record := model.EnrollmentRecord{
		ID:        len(roster) + 1,
		StudentID: student.ID,
		Name:      student.Name,
		Email:     student.Email,
	}

	event.Enrolled = append(event.Enrolled, model.Summary{StudentID: student.ID, Name: student.Name})
	doc.Rosters[key] = append(roster, record)
	student.Events = append(student.Events, event.Name)

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	if err := e.store.SaveStudents(students); err != nil {
		return nil, err
	}

	e.record(ctx, journal.OpEnrolled, "event", key, map[string]string{
		"student": student.ID,
		"record":  strconv.Itoa(record.ID),
	})
	return &record, nil
}

// Unenroll removes the student's enrollment: summary, roster record, and
// subscription. The remaining roster records are renumbered 1..n.
func (e *Engine) Unenroll(ctx context.Context, eventName, studentID string) error {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return err
	}
	students, err := e.store.LoadStudents()
	if err != nil {
		return err
	}

	event := doc.FindEvent(identity.NormalizeKey(eventName))
	if event == nil {
		return NewNotFound("event", eventName)
	}
	if _, ok := students[studentID]; !ok {
		return NewNotFound("student", studentID)
	}

	roster := doc.Rosters[event.Key()]
	idx := -1
	for i := range roster {
		if roster[i].StudentID == studentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NewNotFound("enrollment", studentID)
	}

	e.removeEnrollment(doc, event, students, idx)

	if err := e.store.SaveEvents(doc); err != nil {
		return err
	}
	if err := e.store.SaveStudents(students); err != nil {
		return err
	}

	e.record(ctx, journal.OpUnenrolled, "event", event.Key(), map[string]string{
		"student": studentID,
	})
	return nil
}

// RemoveEnrollment is the coordinator path: it removes the roster record
// with the given 1-based id, resolving it to the student's profile and
// delegating to the same removal and renumbering logic as Unenroll. A
// missing id is reported as NOT_FOUND; the caller may retry with another.
func (e *Engine) RemoveEnrollment(ctx context.Context, eventName string, enrollmentID int) (*model.EnrollmentRecord, error) {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	students, err := e.store.LoadStudents()
	if err != nil {
		return nil, err
	}

	event := doc.FindEvent(identity.NormalizeKey(eventName))
	if event == nil {
		return nil, NewNotFound("event", eventName)
	}

	roster := doc.Rosters[event.Key()]
	idx := -1
	for i := range roster {
		if roster[i].ID == enrollmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NewNotFound("enrollment", strconv.Itoa(enrollmentID))
	}

	removed := roster[idx]
	e.removeEnrollment(doc, event, students, idx)

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	if err := e.store.SaveStudents(students); err != nil {
		return nil, err
	}

	e.record(ctx, journal.OpUnenrolled, "event", event.Key(), map[string]string{
		"student": removed.StudentID,
		"record":  strconv.Itoa(enrollmentID),
	})
	return &removed, nil
}

// removeEnrollment drops the roster record at idx and keeps the other two
// facets in step: the event's summary list loses the student, the student's
// subscription list loses the event, and the roster is renumbered. Both
// removal paths (student-initiated and coordinator-by-id) share this logic
// because both must uphold the same roster invariant.
func (e *Engine) removeEnrollment(doc *model.EventsDocument, event *model.Event, students model.ProfileMap, idx int) {
	key := event.Key()
	roster := doc.Rosters[key]
	record := roster[idx]

	roster = append(roster[:idx], roster[idx+1:]...)
	renumber(roster)
	doc.Rosters[key] = roster

	for i := range event.Enrolled {
		if event.Enrolled[i].StudentID == record.StudentID {
			event.Enrolled = append(event.Enrolled[:i], event.Enrolled[i+1:]...)
			break
		}
	}

	// The profile may be absent when removing by id against drifted data;
	// the roster and summary are still cleaned up.
	if student, ok := students[record.StudentID]; ok {
		dropSubscriptions(model.ProfileMap{record.StudentID: student}, key)
	}
}

// renumber reassigns contiguous 1-based ids. Mandatory after any removal.
func renumber(roster []model.EnrollmentRecord) {
	for i := range roster {
		roster[i].ID = i + 1
	}
}
