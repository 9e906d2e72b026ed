package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// AnalysisTypeRepository defines persistence operations for analysis types.
type AnalysisTypeRepository interface {
	Create(ctx context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error)
	FindByID(ctx context.Context, id string) (*domain.AnalysisType, error)
	FindAll(ctx context.Context) ([]*domain.AnalysisType, error)
	FindActive(ctx context.Context) ([]*domain.AnalysisType, error)
	SearchByName(ctx context.Context, name string) ([]*domain.AnalysisType, error)
	Update(ctx context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error)
}
