package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// ResultRepository defines persistence operations for analysis results.
// The unique index on appointment_id is the authoritative one-result-per-
// appointment guard; duplicate inserts surface as domain.ErrResultExists.
type ResultRepository interface {
	Create(ctx context.Context, r *domain.Result) (*domain.Result, error)
	FindByID(ctx context.Context, id string) (*domain.Result, error)
	FindByAppointment(ctx context.Context, appointmentID string) (*domain.Result, error)
	// FindAll returns results ordered by result date descending.
	FindAll(ctx context.Context) ([]*domain.Result, error)
	FindByTechnician(ctx context.Context, technicianID string) ([]*domain.Result, error)
	FindByStatus(ctx context.Context, status domain.ResultStatus) ([]*domain.Result, error)
	Update(ctx context.Context, r *domain.Result) (*domain.Result, error)
	Delete(ctx context.Context, id string) error
}
