package ports

import (
	"context"
	"time"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindAll(ctx context.Context) ([]*domain.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error)
	FindByLab(ctx context.Context, labID string) ([]*domain.Appointment, error)
	// FindUpcomingByLab returns non-cancelled appointments scheduled after the
	// given instant, ordered by scheduled time ascending.
	FindUpcomingByLab(ctx context.Context, labID string, after time.Time) ([]*domain.Appointment, error)
	FindByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
