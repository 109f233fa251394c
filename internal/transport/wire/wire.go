// Package wire holds the JSON shapes exchanged between the booking API and
// its clients. Every response carries a top-level "success" flag.
package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Record is the wire form of an appointment or class enrollment.
type Record struct {
	ID     string `json:"id"     yaml:"id"`
	Kind   string `json:"kind"   yaml:"kind"`
	Status string `json:"status" yaml:"status"`
	Name   string `json:"name"   yaml:"name"`
	Email  string `json:"email"  yaml:"email"`
	Phone  string `json:"phone"  yaml:"phone"`

	Service         string `json:"service,omitempty"          yaml:"service,omitempty"`
	AppointmentDate string `json:"appointment_date,omitempty" yaml:"appointment_date,omitempty"`
	AppointmentTime string `json:"appointment_time,omitempty" yaml:"appointment_time,omitempty"`
	Message         string `json:"message,omitempty"          yaml:"message,omitempty"`

	ClassType         string `json:"class_type,omitempty"         yaml:"class_type,omitempty"`
	ExperienceLevel   string `json:"experience_level,omitempty"   yaml:"experience_level,omitempty"`
	PreferredSchedule string `json:"preferred_schedule,omitempty" yaml:"preferred_schedule,omitempty"`
	Goals             string `json:"goals,omitempty"              yaml:"goals,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// FromRecord converts a domain record.
func FromRecord(r domain.Record) Record {
	out := Record{
		ID:        r.ID.String(),
		Kind:      r.Kind.String(),
		Status:    r.Status.String(),
		Name:      r.Contact.Name,
		Email:     r.Contact.Email,
		Phone:     r.Contact.Phone,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if a := r.Appointment; a != nil {
		out.Service = a.Service
		out.AppointmentDate = a.Date.Format(domain.DateLayout)
		out.AppointmentTime = a.Time
		out.Message = a.Message
	}
	if e := r.Enrollment; e != nil {
		out.ClassType = e.ClassType
		out.ExperienceLevel = e.ExperienceLevel
		out.PreferredSchedule = e.PreferredSchedule
		out.Goals = e.Goals
	}
	return out
}

// FromRecords converts a slice, never returning nil.
func FromRecords(rs []domain.Record) []Record {
	out := make([]Record, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRecord(r))
	}
	return out
}

// ToDomain parses the wire record back into a domain record.
func (r Record) ToDomain() (domain.Record, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("wire: record id %q: %w", r.ID, err)
	}
	kind, err := domain.ParseKind(r.Kind)
	if err != nil {
		return domain.Record{}, fmt.Errorf("wire: record %s: %w", r.ID, err)
	}
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Record{}, fmt.Errorf("wire: record %s: %w", r.ID, err)
	}

	out := domain.Record{
		ID:        id,
		Kind:      kind,
		Status:    status,
		Contact:   domain.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}

	switch kind {
	case domain.KindAppointment:
		date, err := time.Parse(domain.DateLayout, r.AppointmentDate)
		if err != nil {
			return domain.Record{}, fmt.Errorf("wire: record %s: appointment_date: %w", r.ID, err)
		}
		out.Appointment = &domain.AppointmentDetails{
			Service: r.Service, Date: date, Time: r.AppointmentTime, Message: r.Message,
		}
	case domain.KindClass:
		out.Enrollment = &domain.EnrollmentDetails{
			ClassType:         r.ClassType,
			ExperienceLevel:   r.ExperienceLevel,
			PreferredSchedule: r.PreferredSchedule,
			Goals:             r.Goals,
		}
	}
	return out, nil
}

// ToDomainRecords converts a list, stopping at the first bad entry.
func ToDomainRecords(rs []Record) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(rs))
	for _, r := range rs {
		rec, err := r.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Admin is the operator profile returned on login.
type Admin struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// FromAdmin converts a domain admin, dropping the password hash.
func FromAdmin(a domain.Admin) Admin {
	return Admin{ID: a.ID.String(), Name: a.Name, Email: a.Email}
}

// ─── Requests ───────────────────────────────────────────────────────────────

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusRequest is the body of PUT /api/admin/{kind}/{id}/status.
type StatusRequest struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

// AppointmentRequest is a public appointment submission. The public form
// posts date and time; the record names appointment_date and
// appointment_time are accepted too.
type AppointmentRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Service         string `json:"service"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Message         string `json:"message,omitempty"`
}

// UnmarshalJSON accepts both field spellings.
func (r *AppointmentRequest) UnmarshalJSON(data []byte) error {
	type plain AppointmentRequest
	var aux struct {
		plain
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = AppointmentRequest(aux.plain)
	r.AppointmentDate = firstNonEmpty(r.AppointmentDate, aux.Date)
	r.AppointmentTime = firstNonEmpty(r.AppointmentTime, aux.Time)
	return nil
}

// EnrollmentRequest is a public class enrollment. The public form posts
// classType, experience and schedule; the snake_case record names are
// accepted too.
type EnrollmentRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ClassType         string `json:"class_type"`
	ExperienceLevel   string `json:"experience_level"`
	PreferredSchedule string `json:"preferred_schedule"`
	Goals             string `json:"goals,omitempty"`
}

// UnmarshalJSON accepts both field spellings.
func (r *EnrollmentRequest) UnmarshalJSON(data []byte) error {
	type plain EnrollmentRequest
	var aux struct {
		plain
		ClassType  string `json:"classType"`
		Experience string `json:"experience"`
		Schedule   string `json:"schedule"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = EnrollmentRequest(aux.plain)
	r.ClassType = firstNonEmpty(r.ClassType, aux.ClassType)
	r.ExperienceLevel = firstNonEmpty(r.ExperienceLevel, aux.Experience)
	r.PreferredSchedule = firstNonEmpty(r.PreferredSchedule, aux.Schedule)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// ─── Responses ──────────────────────────────────────────────────────────────

// LoginResponse carries the bearer token and the operator profile.
type LoginResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token"`
	Admin     Admin      `json:"admin"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AdminResponse is the body of GET /api/admin/me.
type AdminResponse struct {
	Success bool  `json:"success"`
	Admin   Admin `json:"admin"`
}

// RecordResponse wraps a single created or updated record.
type RecordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data"`
}

// ListResponse holds either "appointments" or "classes", matching the kind
// listed. The pointer keeps an empty list present in the output.
type ListResponse struct {
	Success      bool      `json:"success"`
	Appointments *[]Record `json:"appointments,omitempty"`
	Classes      *[]Record `json:"classes,omitempty"`
}

// NewListResponse builds the list body for kind.
func NewListResponse(kind domain.Kind, records []Record) ListResponse {
	if records == nil {
		records = []Record{}
	}
	resp := ListResponse{Success: true}
	switch kind {
	case domain.KindAppointment:
		resp.Appointments = &records
	case domain.KindClass:
		resp.Classes = &records
	}
	return resp
}

// Records returns the list for kind, or nil when the body did not carry it.
func (r ListResponse) Records(kind domain.Kind) []Record {
	var p *[]Record
	switch kind {
	case domain.KindAppointment:
		p = r.Appointments
	case domain.KindClass:
		p = r.Classes
	}
	if p == nil {
		return nil
	}
	return *p
}

// Counts is a per-status tally for one kind.
type Counts struct {
	Total     int `json:"total"     yaml:"total"`
	Pending   int `json:"pending"   yaml:"pending"`
	Confirmed int `json:"confirmed" yaml:"confirmed"`
	Cancelled int `json:"cancelled" yaml:"cancelled"`
	Completed int `json:"completed" yaml:"completed"`
}

// Stats is the dashboard aggregate.
type Stats struct {
	Appointments Counts `json:"appointments" yaml:"appointments"`
	Classes      Counts `json:"classes"      yaml:"classes"`
}

// StatsResponse is the body of GET /api/admin/stats.
type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

func fromCounts(c domain.StatusCounts) Counts {
	return Counts(c)
}

// FromStats converts the domain aggregate.
func FromStats(s domain.Stats) Stats {
	return Stats{Appointments: fromCounts(s.Appointments), Classes: fromCounts(s.Classes)}
}

// ToDomain converts back to the domain aggregate.
func (s Stats) ToDomain() domain.Stats {
	return domain.Stats{
		Appointments: domain.StatusCounts(s.Appointments),
		Classes:      domain.StatusCounts(s.Classes),
	}
}

// FieldError is one failed field in a validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
