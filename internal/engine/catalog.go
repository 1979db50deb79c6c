package engine

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmoraes/inscrito/internal/identity"
	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
)

// CreateEventInput carries the already-parsed values for CreateEvent.
type CreateEventInput struct {
	Name        string
	Date        string
	Description string
	Capacity    int

	// AllowDuplicate inserts the event even when an exact duplicate exists.
	// The first create attempt leaves it false; the caller sets it after
	// seeing a conflict result and deciding to insert anyway.
	AllowDuplicate bool
}

// CreateEventResult is the outcome of CreateEvent. When Conflict is true,
// Event is the existing exact duplicate and nothing was created.
type CreateEventResult struct {
	Event    model.Event
	Conflict bool
}

// CreateEvent validates the input, detects exact duplicates, and on success
// appends the event and registers an empty roster under its normalized key.
// The document is persisted before the result is returned.
func (e *Engine) CreateEvent(ctx context.Context, in CreateEventInput) (*CreateEventResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(CodeInvalidInput, "event name is required")
	}
	if !identity.ValidDate(in.Date) {
		return nil, newError(CodeInvalidDate, "date %q is not a valid DD/MM/YYYY date", in.Date)
	}
	if in.Capacity <= 0 {
		return nil, newError(CodeInvalidCapacity, "capacity must be a positive integer, got %d", in.Capacity)
	}

	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}

	event := model.Event{
		Name:        name,
		Date:        in.Date,
		Description: in.Description,
		Capacity:    in.Capacity,
		Enrolled:    []model.Summary{},
	}
	event.Status = deriveStatus(&event, e.now())

	// Exact duplicate (same normalized name + date + description + capacity)
	// is a conflict result, not a hard rejection: the caller decides whether
	// to insert anyway.
	if !in.AllowDuplicate {
		for i := range doc.Events {
			if doc.Events[i].SameContent(&event) {
				return &CreateEventResult{Event: doc.Events[i], Conflict: true}, nil
			}
		}
	}

	doc.Events = append(doc.Events, event)
	key := event.Key()
	if _, ok := doc.Rosters[key]; !ok {
		doc.Rosters[key] = []model.EnrollmentRecord{}
	}

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	e.record(ctx, journal.OpEventCreated, "event", key, map[string]string{
		"name": event.Name,
		"date": event.Date,
	})
	return &CreateEventResult{Event: event}, nil
}

// RenameEvent moves the event to a new display name. The roster entry moves
// from the old normalized key to the new one (an empty roster is created
// when none existed under the old key, which legitimately happens when the
// roster was written under a different casing), and every enrolled profile's
// subscription list follows the new display name. The in-memory view never
// holds the event under the new name with the roster still under the old
// key.
func (e *Engine) RenameEvent(ctx context.Context, name, newName string) (*model.Event, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, newError(CodeInvalidInput, "new event name is required")
	}

	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	students, coordinators, err := e.loadProfiles()
	if err != nil {
		return nil, err
	}

	event := doc.FindEvent(identity.NormalizeKey(name))
	if event == nil {
		return nil, NewNotFound("event", name)
	}

	oldKey := event.Key()
	newKey := identity.NormalizeKey(newName)
	if newKey != oldKey && doc.FindEvent(newKey) != nil {
		return nil, newError(CodeInvalidInput, "an event named %q already exists", newName)
	}

	oldName := event.Name
	roster := doc.Rosters[oldKey]
	if roster == nil {
		roster = []model.EnrollmentRecord{}
	}
	delete(doc.Rosters, oldKey)
	doc.Rosters[newKey] = roster
	event.Name = newName

	// Subscriptions are held by display name; they follow the rename so the
	// aggregate stays consistent across all three facets.
	studentsChanged := retargetSubscriptions(students, oldKey, newName)
	coordinatorsChanged := retargetSubscriptions(coordinators, oldKey, newName)

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	if studentsChanged {
		if err := e.store.SaveStudents(students); err != nil {
			return nil, err
		}
	}
	if coordinatorsChanged {
		if err := e.store.SaveCoordinators(coordinators); err != nil {
			return nil, err
		}
	}

	e.record(ctx, journal.OpEventRenamed, "event", newKey, map[string]string{
		"from": oldName,
		"to":   newName,
	})
	out := *event
	return &out, nil
}

// UpdateEvent applies a single field change to the event with the given
// name. The field set is the closed model.EventField enumeration; a name
// change delegates to RenameEvent so the roster key and subscriptions move
// with it.
func (e *Engine) UpdateEvent(ctx context.Context, name string, field model.EventField, value model.FieldValue) (*model.Event, error) {
	if field == model.FieldName {
		return e.RenameEvent(ctx, name, value.Text)
	}

	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	event := doc.FindEvent(identity.NormalizeKey(name))
	if event == nil {
		return nil, NewNotFound("event", name)
	}

	switch field {
	case model.FieldDate:
		if !identity.ValidDate(value.Text) {
			return nil, newError(CodeInvalidDate, "date %q is not a valid DD/MM/YYYY date", value.Text)
		}
		event.Date = value.Text
		event.Status = deriveStatus(event, e.now())
	case model.FieldDescription:
		event.Description = value.Text
	case model.FieldCapacity:
		if value.Capacity <= 0 {
			return nil, newError(CodeInvalidCapacity, "capacity must be a positive integer, got %d", value.Capacity)
		}
		if value.Capacity < len(event.Enrolled) {
			return nil, newError(CodeInvalidCapacity,
				"capacity %d is below the current enrollment of %d", value.Capacity, len(event.Enrolled))
		}
		event.Capacity = value.Capacity
	default:
		return nil, newError(CodeInvalidInput, "unknown event field %q", field)
	}

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	e.record(ctx, journal.OpEventUpdated, "event", event.Key(), map[string]string{
		"field": field.String(),
	})
	out := *event
	return &out, nil
}

// DeleteEvent removes the event, its roster, and its name from every
// enrolled profile's subscription list.
func (e *Engine) DeleteEvent(ctx context.Context, name string) (*model.Event, error) {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	students, coordinators, err := e.loadProfiles()
	if err != nil {
		return nil, err
	}

	key := identity.NormalizeKey(name)
	idx := -1
	for i := range doc.Events {
		if doc.Events[i].Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NewNotFound("event", name)
	}

	removed := doc.Events[idx]
	doc.Events = append(doc.Events[:idx], doc.Events[idx+1:]...)
	delete(doc.Rosters, key)

	// Cascade: a deleted event must not linger in subscription lists, or a
	// later profile listing shows a dangling name.
	studentsChanged := dropSubscriptions(students, key)
	coordinatorsChanged := dropSubscriptions(coordinators, key)

	if err := e.store.SaveEvents(doc); err != nil {
		return nil, err
	}
	if studentsChanged {
		if err := e.store.SaveStudents(students); err != nil {
			return nil, err
		}
	}
	if coordinatorsChanged {
		if err := e.store.SaveCoordinators(coordinators); err != nil {
			return nil, err
		}
	}

	e.record(ctx, journal.OpEventDeleted, "event", key, map[string]string{
		"name": removed.Name,
	})
	return &removed, nil
}

// ListEvents returns the catalog in insertion order with freshly derived,
// persisted statuses.
func (e *Engine) ListEvents(ctx context.Context) ([]model.Event, error) {
	doc, err := e.loadWithFreshStatuses()
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, len(doc.Events))
	copy(out, doc.Events)
	return out, nil
}

var positionPattern = regexp.MustCompile(`^\d+$`)

// SearchEvents resolves a search term against the catalog. A non-negative
// integer term selects the event at that 1-based display position in
// insertion order (empty result when out of range); any other term matches
// event names case-insensitively as a substring, preserving catalog order.
// Multiple matches are a normal result the caller must disambiguate.
func (e *Engine) SearchEvents(ctx context.Context, term string) ([]model.Event, error) {
	doc, err := e.loadWithFreshStatuses()
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if positionPattern.MatchString(term) {
		pos, err := strconv.Atoi(term)
		if err != nil || pos < 1 || pos > len(doc.Events) {
			return []model.Event{}, nil
		}
		return []model.Event{doc.Events[pos-1]}, nil
	}

	needle := identity.NormalizeKey(term)
	matches := []model.Event{}
	for i := range doc.Events {
		if strings.Contains(identity.NormalizeKey(doc.Events[i].Name), needle) {
			matches = append(matches, doc.Events[i])
		}
	}
	return matches, nil
}

// EventRoster returns the canonical roster for the named event.
func (e *Engine) EventRoster(ctx context.Context, name string) ([]model.EnrollmentRecord, error) {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	event := doc.FindEvent(identity.NormalizeKey(name))
	if event == nil {
		return nil, NewNotFound("event", name)
	}
	roster := doc.Rosters[event.Key()]
	out := make([]model.EnrollmentRecord, len(roster))
	copy(out, roster)
	return out, nil
}

// loadWithFreshStatuses loads the events document, re-derives every status,
// and persists the document when anything changed, so displayed status never
// goes stale across a session boundary.
func (e *Engine) loadWithFreshStatuses() (*model.EventsDocument, error) {
	doc, err := e.store.LoadEvents()
	if err != nil {
		return nil, err
	}
	if refreshStatuses(doc, e.now()) {
		if err := e.store.SaveEvents(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// deriveStatus computes an event's status against now: Available when the
// date is today or later, Finished when past, Unknown when unparsable.
func deriveStatus(event *model.Event, now time.Time) model.Status {
	d, err := identity.ParseDate(event.Date)
	if err != nil {
		return model.StatusUnknown
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return model.StatusFinished
	}
	return model.StatusAvailable
}

func refreshStatuses(doc *model.EventsDocument, now time.Time) bool {
	changed := false
	for i := range doc.Events {
		s := deriveStatus(&doc.Events[i], now)
		if doc.Events[i].Status != s {
			doc.Events[i].Status = s
			changed = true
		}
	}
	return changed
}

// retargetSubscriptions rewrites subscription entries matching the old event
// key to the new display name. Returns whether anything changed.
func retargetSubscriptions(profiles model.ProfileMap, oldKey, newName string) bool {
	changed := false
	for _, p := range profiles {
		for i, subscribed := range p.Events {
			if identity.NormalizeKey(subscribed) == oldKey {
				p.Events[i] = newName
				changed = true
			}
		}
	}
	return changed
}

// dropSubscriptions removes subscription entries matching the event key.
func dropSubscriptions(profiles model.ProfileMap, key string) bool {
	changed := false
	for _, p := range profiles {
		kept := p.Events[:0]
		for _, subscribed := range p.Events {
			if identity.NormalizeKey(subscribed) == key {
				changed = true
				continue
			}
			kept = append(kept, subscribed)
		}
		p.Events = kept
	}
	return changed
}
