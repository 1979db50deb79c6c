// Package identity provides the pure validation and identity helpers shared
// by the engine and store: email/date format checks, sequential id
// generation, and the normalized keys used for case-insensitive lookups.
//
// Everything here is stateless. Callers own the collections; this package
// only answers questions about individual values.
package identity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the only wire format for dates: zero-padded day/month and a
// four-digit year. Dates are strings on the wire, never a structured type.
const DateLayout = "02/01/2006"

// emailPattern accepts "non-@ chars, @, non-@ chars, '.', non-@ chars".
// It is a structural check only; deliverability is not our problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// datePattern enforces zero-padding before the calendar parser runs, since
// time.Parse is lenient about single-digit days and months.
var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidDate reports whether s is a real calendar date in DD/MM/YYYY form.
// Zero-padding is required; impossible dates such as 31/02/2024 are rejected
// by the calendar parser itself.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses a DD/MM/YYYY wire date.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not in DD/MM/YYYY form", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// InvalidStateError reports a collection whose ids cannot have been produced
// by NextID. It indicates corruption, not bad user input.
type InvalidStateError struct {
	ID string // the offending non-numeric id
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: profile id %q is not numeric", e.ID)
}

// NextID returns the next sequential id for a collection of numeric string
// ids: max+1, with an empty collection yielding "1". Ids are never reused;
// gaps left by deletions stay gaps.
//
// Returns *InvalidStateError if any existing id is non-numeric, which cannot
// occur as long as ids are only ever generated here.
func NextID(existing []string) (string, error) {
	max := 0
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil || n < 0 {
			return "", &InvalidStateError{ID: id}
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1), nil
}

// NormalizeKey derives the lookup key for an event name: NFC-normalized,
// trimmed, lower-cased. Rosters are keyed by this value so that lookups are
// independent of display casing and of how the name was composed.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeEmail derives the identity form of an email address for the
// global case-insensitive uniqueness check across profile collections.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
