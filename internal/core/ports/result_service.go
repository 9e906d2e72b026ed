package ports

import (
	"context"
	"time"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// CreateResultInput carries the fields for a new analysis result. A zero
// ResultDate defaults to now; an empty Status defaults to PENDING.
type CreateResultInput struct {
	AppointmentID  string
	TechnicianID   string
	PDFPath        string
	Notes          string
	ResultDate     time.Time
	Status         string
	MeasuredValues string
}

// UpdateResultInput is a partial update; nil fields are left unchanged.
type UpdateResultInput struct {
	PDFPath        *string
	Notes          *string
	ResultDate     *time.Time
	Status         *string
	MeasuredValues *string
}

// ResultService defines the analysis-result use cases.
type ResultService interface {
	Create(ctx context.Context, input CreateResultInput) (*domain.Result, error)
	GetByID(ctx context.Context, id string) (*domain.Result, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*domain.Result, error)
	List(ctx context.Context) ([]*domain.Result, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]*domain.Result, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Result, error)
	Update(ctx context.Context, id string, input UpdateResultInput) (*domain.Result, error)
	ChangeStatus(ctx context.Context, id, status string) (*domain.Result, error)
	Delete(ctx context.Context, id string) error
}
