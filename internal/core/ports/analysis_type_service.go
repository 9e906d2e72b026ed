package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// AnalysisTypeInput carries the writable fields of an analysis type.
type AnalysisTypeInput struct {
	Name           string
	Description    string
	Price          float64
	TurnaroundDays int
	Active         bool
}

// AnalysisTypeService defines the analysis-type use cases.
type AnalysisTypeService interface {
	Create(ctx context.Context, input AnalysisTypeInput) (*domain.AnalysisType, error)
	GetByID(ctx context.Context, id string) (*domain.AnalysisType, error)
	List(ctx context.Context) ([]*domain.AnalysisType, error)
	ListActive(ctx context.Context) ([]*domain.AnalysisType, error)
	SearchByName(ctx context.Context, name string) ([]*domain.AnalysisType, error)
	Update(ctx context.Context, id string, input AnalysisTypeInput) (*domain.AnalysisType, error)
	SoftDelete(ctx context.Context, id string) error
}
