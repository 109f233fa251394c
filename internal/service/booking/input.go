package booking

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

const (
	maxNameLen  = 200
	maxEmailLen = 254
	maxPhoneLen = 32
	maxTextLen  = 2000
	minDigits   = 7
)

// ContactInput holds the customer fields every submission carries.
type ContactInput struct {
	Name  string
	Email string
	Phone string
}

func (c *ContactInput) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
}

func (c ContactInput) validate() []domain.FieldError {
	var errs []domain.FieldError

	switch {
	case c.Name == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case len(c.Name) > maxNameLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	switch {
	case c.Email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(c.Email) > maxEmailLen:
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	default:
		if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
	}

	switch {
	case c.Phone == "":
		errs = append(errs, domain.FieldError{Field: "phone", Message: "required"})
	case len(c.Phone) > maxPhoneLen:
		errs = append(errs, domain.FieldError{Field: "phone", Message: "too long"})
	case !validPhone(c.Phone):
		errs = append(errs, domain.FieldError{Field: "phone", Message: "invalid phone number"})
	}

	return errs
}

func (c ContactInput) contact() domain.Contact {
	return domain.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// validPhone accepts digits with the usual separators and an optional
// leading plus.
func validPhone(p string) bool {
	digits := 0
	for i, r := range p {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minDigits
}

// AppointmentInput is a public appointment request.
type AppointmentInput struct {
	Contact ContactInput
	Service string
	Date    string // YYYY-MM-DD
	Time    string
	Message string
}

// Validate normalizes the input in place and checks every field.
func (i *AppointmentInput) Validate() (time.Time, error) {
	i.Contact.normalize()
	i.Service = strings.TrimSpace(i.Service)
	i.Date = strings.TrimSpace(i.Date)
	i.Time = strings.TrimSpace(i.Time)
	i.Message = strings.TrimSpace(i.Message)

	errs := i.Contact.validate()

	if i.Service == "" {
		errs = append(errs, domain.FieldError{Field: "service", Message: "required"})
	} else if !domain.IsKnownService(i.Service) {
		errs = append(errs, domain.FieldError{Field: "service", Message: "unknown service"})
	}

	var date time.Time
	if i.Date == "" {
		errs = append(errs, domain.FieldError{Field: "appointment_date", Message: "required"})
	} else {
		d, err := time.Parse(domain.DateLayout, i.Date)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "appointment_date", Message: "must be a date in YYYY-MM-DD format"})
		}
		date = d
	}

	if i.Time == "" {
		errs = append(errs, domain.FieldError{Field: "appointment_time", Message: "required"})
	} else if !domain.IsKnownTimeSlot(i.Time) {
		errs = append(errs, domain.FieldError{Field: "appointment_time", Message: "unknown time slot"})
	}

	if len(i.Message) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return time.Time{}, domain.NewValidationErrors(errs)
	}
	return date, nil
}

// EnrollmentInput is a public class enrollment request.
type EnrollmentInput struct {
	Contact           ContactInput
	ClassType         string
	ExperienceLevel   string
	PreferredSchedule string
	Goals             string
}

// Validate normalizes the input in place and checks every field.
func (i *EnrollmentInput) Validate() error {
	i.Contact.normalize()
	i.ClassType = strings.TrimSpace(i.ClassType)
	i.ExperienceLevel = strings.TrimSpace(i.ExperienceLevel)
	i.PreferredSchedule = strings.TrimSpace(i.PreferredSchedule)
	i.Goals = strings.TrimSpace(i.Goals)

	errs := i.Contact.validate()

	if i.ClassType == "" {
		errs = append(errs, domain.FieldError{Field: "class_type", Message: "required"})
	} else if !domain.IsKnownClassType(i.ClassType) {
		errs = append(errs, domain.FieldError{Field: "class_type", Message: "unknown class type"})
	}

	if i.ExperienceLevel == "" {
		errs = append(errs, domain.FieldError{Field: "experience_level", Message: "required"})
	} else if !domain.IsKnownExperience(i.ExperienceLevel) {
		errs = append(errs, domain.FieldError{Field: "experience_level", Message: "unknown experience level"})
	}

	if i.PreferredSchedule == "" {
		errs = append(errs, domain.FieldError{Field: "preferred_schedule", Message: "required"})
	} else if !domain.IsKnownSchedule(i.PreferredSchedule) {
		errs = append(errs, domain.FieldError{Field: "preferred_schedule", Message: "unknown schedule"})
	}

	if len(i.Goals) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "goals", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput selects the records an operator wants to see.
type ListInput struct {
	Kind   domain.Kind
	Status string // optional filter
}

// SetStatusInput is an operator status change. ExpectedStatus, when set,
// makes the change conditional on the record's current status.
type SetStatusInput struct {
	Kind           domain.Kind
	ID             string
	Status         string
	ExpectedStatus string
}
