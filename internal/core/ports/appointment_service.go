package ports

import (
	"context"
	"time"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// AppointmentInput carries the writable fields of an appointment. An empty
// Status on create defaults to SCHEDULED.
type AppointmentInput struct {
	PatientID      string
	LabID          string
	AnalysisTypeID string
	ScheduledAt    time.Time
	Status         string
	Notes          string
}

// AppointmentService defines the appointment use cases.
type AppointmentService interface {
	Create(ctx context.Context, input AppointmentInput) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error)
	ListByLab(ctx context.Context, labID string) ([]*domain.Appointment, error)
	ListUpcomingByLab(ctx context.Context, labID string) ([]*domain.Appointment, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Appointment, error)
	Update(ctx context.Context, id string, input AppointmentInput) (*domain.Appointment, error)
	ChangeStatus(ctx context.Context, id, status string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
