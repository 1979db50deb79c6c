package model

import "fmt"

// EventField is the closed enumeration of updatable event fields. The update
// operation is parameterized by this type; there is no field-name string
// dispatch anywhere.
type EventField int

const (
	FieldName EventField = iota
	FieldDate
	FieldDescription
	FieldCapacity
)

// String returns the canonical flag spelling of the field.
func (f EventField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDate:
		return "date"
	case FieldDescription:
		return "description"
	case FieldCapacity:
		return "capacity"
	default:
		return fmt.Sprintf("EventField(%d)", int(f))
	}
}

// ParseEventField maps a flag value to an EventField. Unknown names are the
// caller's input error, not a panic.
func ParseEventField(s string) (EventField, error) {
	switch s {
	case "name":
		return FieldName, nil
	case "date":
		return FieldDate, nil
	case "description":
		return FieldDescription, nil
	case "capacity":
		return FieldCapacity, nil
	default:
		return 0, fmt.Errorf("unknown event field %q (want name, date, description, or capacity)", s)
	}
}

// FieldValue carries the already-parsed value for an UpdateEvent call.
// Text is used for name, date, and description; Capacity for capacity.
type FieldValue struct {
	Text     string
	Capacity int
}
