package cli

import (
	"fmt"
	"strings"

	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
)

// Text rendering uses fixed-width columns instead of a tab writer so output
// is stable across terminal widths and golden files stay byte-exact.

func renderEvents(events []model.Event) string {
	if len(events) == 0 {
		return "no events\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-30s %-12s %-10s %s\n", "#", "NAME", "DATE", "STATUS", "SEATS")
	for i, ev := range events {
		fmt.Fprintf(&b, "%-4d %-30s %-12s %-10s %d/%d\n",
			i+1, ev.Name, ev.Date, ev.Status, len(ev.Enrolled), ev.Capacity)
		if ev.Description != "" {
			fmt.Fprintf(&b, "     %s\n", ev.Description)
		}
	}
	return b.String()
}

func renderEvent(ev *model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:        %s\n", ev.Name)
	fmt.Fprintf(&b, "Date:        %s\n", ev.Date)
	if ev.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", ev.Description)
	}
	fmt.Fprintf(&b, "Status:      %s\n", ev.Status)
	fmt.Fprintf(&b, "Seats:       %d/%d\n", len(ev.Enrolled), ev.Capacity)
	return b.String()
}

func renderRoster(eventName string, roster []model.EnrollmentRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Roster for %s (%d enrolled)\n", eventName, len(roster))
	if len(roster) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "%-4s %-6s %-25s %s\n", "#", "ID", "NAME", "EMAIL")
	for _, rec := range roster {
		fmt.Fprintf(&b, "%-4d %-6s %-25s %s\n", rec.ID, rec.StudentID, rec.Name, rec.Email)
	}
	return b.String()
}

func renderProfiles(role model.Role, profiles []model.Profile) string {
	if len(profiles) == 0 {
		return fmt.Sprintf("no %ss\n", role)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-25s %-30s %s\n", "ID", "NAME", "EMAIL", "EVENTS")
	for _, p := range profiles {
		events := "-"
		if len(p.Events) > 0 {
			events = strings.Join(p.Events, ", ")
		}
		fmt.Fprintf(&b, "%-6s %-25s %-30s %s\n", p.ID, p.Name, p.Email, events)
	}
	return b.String()
}

func renderProfile(p *model.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:     %s\n", p.ID)
	fmt.Fprintf(&b, "Name:   %s\n", p.Name)
	fmt.Fprintf(&b, "Email:  %s\n", p.Email)
	if p.Course != "" {
		fmt.Fprintf(&b, "Course: %s\n", p.Course)
	}
	if len(p.Events) > 0 {
		fmt.Fprintf(&b, "Events: %s\n", strings.Join(p.Events, ", "))
	}
	return b.String()
}

func renderHistory(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "no history\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-20s %-10s %s\n", "SEQ", "OP", "ENTITY", "KEY")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-6d %-20s %-10s %s\n", e.Seq, e.Op, e.Entity, e.EntityKey)
	}
	return b.String()
}
