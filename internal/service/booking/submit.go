package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// SubmitAppointment validates a public appointment request and stores it as
// a pending record.
func (s *Service) SubmitAppointment(ctx context.Context, input AppointmentInput) (*domain.Record, error) {
	date, err := input.Validate()
	if err != nil {
		return nil, err
	}

	rec := domain.NewRecord(domain.KindAppointment, input.Contact.contact(), s.now())
	rec.Appointment = &domain.AppointmentDetails{
		Service: input.Service,
		Date:    date,
		Time:    input.Time,
		Message: input.Message,
	}

	created, err := s.records.Create(ctx, &rec)
	if err != nil {
		return nil, fmt.Errorf("booking.SubmitAppointment: %w", err)
	}

	s.log.InfoContext(ctx, "appointment submitted",
		slog.String("record_id", created.ID.String()),
		slog.String("service", input.Service),
		slog.String("date", input.Date))

	return created, nil
}

// SubmitEnrollment validates a public class enrollment and stores it as a
// pending record.
func (s *Service) SubmitEnrollment(ctx context.Context, input EnrollmentInput) (*domain.Record, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec := domain.NewRecord(domain.KindClass, input.Contact.contact(), s.now())
	rec.Enrollment = &domain.EnrollmentDetails{
		ClassType:         input.ClassType,
		ExperienceLevel:   input.ExperienceLevel,
		PreferredSchedule: input.PreferredSchedule,
		Goals:             input.Goals,
	}

	created, err := s.records.Create(ctx, &rec)
	if err != nil {
		return nil, fmt.Errorf("booking.SubmitEnrollment: %w", err)
	}

	s.log.InfoContext(ctx, "class enrollment submitted",
		slog.String("record_id", created.ID.String()),
		slog.String("class_type", input.ClassType))

	return created, nil
}
