package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// LaboratoryInput carries the writable fields of a laboratory.
type LaboratoryInput struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	Specialty string
	Active    bool
}

// AssignAnalysisInput links an analysis type to a laboratory.
type AssignAnalysisInput struct {
	AnalysisTypeID string
	Available      bool
}

// LaboratoryService defines the laboratory use cases.
type LaboratoryService interface {
	Create(ctx context.Context, input LaboratoryInput) (*domain.Laboratory, error)
	GetByID(ctx context.Context, id string) (*domain.Laboratory, error)
	List(ctx context.Context) ([]*domain.Laboratory, error)
	ListActive(ctx context.Context) ([]*domain.Laboratory, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*domain.Laboratory, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Laboratory, error)
	Update(ctx context.Context, id string, input LaboratoryInput) (*domain.Laboratory, error)
	SoftDelete(ctx context.Context, id string) error
	AssignAnalysis(ctx context.Context, labID string, input AssignAnalysisInput) (*domain.Assignment, error)
	ListAssignments(ctx context.Context, labID string) ([]*domain.Assignment, error)
}
