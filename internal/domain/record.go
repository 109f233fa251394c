package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of appointment dates.
const DateLayout = "2006-01-02"

// Contact holds the customer fields shared by every record kind.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// AppointmentDetails are the fields specific to a service appointment.
type AppointmentDetails struct {
	Service string
	Date    time.Time // civil date, UTC midnight
	Time    string
	Message string
}

// EnrollmentDetails are the fields specific to a class enrollment.
type EnrollmentDetails struct {
	ClassType         string
	ExperienceLevel   string
	PreferredSchedule string
	Goals             string
}

// Record is a customer request tracked through the status lifecycle.
// Exactly one of Appointment or Enrollment is set, matching Kind.
// Status and UpdatedAt are the only fields that change after creation.
type Record struct {
	ID          uuid.UUID
	Kind        Kind
	Status      Status
	Contact     Contact
	Appointment *AppointmentDetails
	Enrollment  *EnrollmentDetails
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecord builds a pending record stamped at now.
func NewRecord(kind Kind, contact Contact, now time.Time) Record {
	now = Timestamp(now)
	return Record{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    StatusPending,
		Contact:   contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r.Appointment != nil {
		a := *r.Appointment
		r.Appointment = &a
	}
	if r.Enrollment != nil {
		e := *r.Enrollment
		r.Enrollment = &e
	}
	return r
}

// Touch returns the updated_at for a status change applied at now.
// The result is strictly after the current UpdatedAt even when the wall
// clock stalls or steps backwards.
func (r Record) Touch(now time.Time) time.Time {
	return NextUpdatedAt(r.UpdatedAt, now)
}

// NextUpdatedAt returns now at storage precision, bumped past prev when needed.
func NextUpdatedAt(prev, now time.Time) time.Time {
	now = Timestamp(now)
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

// Timestamp normalizes t to the precision every store keeps (UTC, microseconds).
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// RecordFilter narrows a list call. A nil Status means every status.
type RecordFilter struct {
	Kind   Kind
	Status *Status
}

// Matches reports whether rec passes the filter.
func (f RecordFilter) Matches(rec Record) bool {
	if rec.Kind != f.Kind {
		return false
	}
	return f.Status == nil || rec.Status == *f.Status
}
