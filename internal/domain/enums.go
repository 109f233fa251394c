package domain

import (
	"fmt"
	"strings"
)

// Kind identifies which record partition a request belongs to.
type Kind string

const (
	KindAppointment Kind = "appointment"
	KindClass       Kind = "class"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindAppointment, KindClass:
		return true
	}
	return false
}

// Plural returns the collection name used in routes and list envelopes.
func (k Kind) Plural() string {
	switch k {
	case KindAppointment:
		return "appointments"
	case KindClass:
		return "classes"
	}
	return ""
}

// AllKinds returns every record kind in display order.
func AllKinds() []Kind {
	return []Kind{KindAppointment, KindClass}
}

// ParseKind accepts both the singular and plural spelling.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "appointment", "appointments":
		return KindAppointment, nil
	case "class", "classes", "enrollment", "enrollments":
		return KindClass, nil
	}
	return "", NewValidationError("kind", fmt.Sprintf("unknown kind %q", raw))
}

// Status is the lifecycle state of a record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
}

// ParseStatus validates a raw status value. Only the exact lowercase
// names are accepted; anything else yields an error wrapping ErrInvalidStatus.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
