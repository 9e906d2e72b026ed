package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// LaboratoryRepository defines persistence operations for laboratories.
// The backing store's unique email index is the authoritative duplicate guard.
type LaboratoryRepository interface {
	Create(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error)
	FindByID(ctx context.Context, id string) (*domain.Laboratory, error)
	FindByEmail(ctx context.Context, email string) (*domain.Laboratory, error)
	FindAll(ctx context.Context) ([]*domain.Laboratory, error)
	FindActive(ctx context.Context) ([]*domain.Laboratory, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]*domain.Laboratory, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Laboratory, error)
	Update(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error)
}

// AssignmentRepository persists laboratory/analysis-type assignments.
// The compound unique index on (lab_id, analysis_type_id) is the authoritative
// guard; duplicate inserts surface as domain.ErrAssignmentExists.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	FindByLab(ctx context.Context, labID string) ([]*domain.Assignment, error)
}
