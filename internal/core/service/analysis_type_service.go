package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// AnalysisTypeService implements the analysis-type catalogue.
type AnalysisTypeService struct {
	repo   ports.AnalysisTypeRepository
	logger zerolog.Logger
}

func NewAnalysisTypeService(repo ports.AnalysisTypeRepository, logger zerolog.Logger) *AnalysisTypeService {
	return &AnalysisTypeService{repo: repo, logger: logger}
}

func validateAnalysisType(input ports.AnalysisTypeInput) error {
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrBadRequest)
	}
	if input.TurnaroundDays < 1 {
		return fmt.Errorf("%w: turnaround days must be at least 1", domain.ErrBadRequest)
	}
	return nil
}

func (s *AnalysisTypeService) Create(ctx context.Context, input ports.AnalysisTypeInput) (*domain.AnalysisType, error) {
	if err := validateAnalysisType(input); err != nil {
		return nil, err
	}

	t := &domain.AnalysisType{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		TurnaroundDays: input.TurnaroundDays,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("analysis_type_id", created.ID).Str("name", created.Name).Msg("analysis type created")
	return created, nil
}

func (s *AnalysisTypeService) GetByID(ctx context.Context, id string) (*domain.AnalysisType, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AnalysisTypeService) List(ctx context.Context) ([]*domain.AnalysisType, error) {
	return s.repo.FindAll(ctx)
}

func (s *AnalysisTypeService) ListActive(ctx context.Context) ([]*domain.AnalysisType, error) {
	return s.repo.FindActive(ctx)
}

func (s *AnalysisTypeService) SearchByName(ctx context.Context, name string) ([]*domain.AnalysisType, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *AnalysisTypeService) Update(ctx context.Context, id string, input ports.AnalysisTypeInput) (*domain.AnalysisType, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateAnalysisType(input); err != nil {
		return nil, err
	}

	t.Name = input.Name
	t.Description = input.Description
	t.Price = input.Price
	t.TurnaroundDays = input.TurnaroundDays
	t.Active = input.Active

	return s.repo.Update(ctx, t)
}

func (s *AnalysisTypeService) SoftDelete(ctx context.Context, id string) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	t.Active = false
	_, err = s.repo.Update(ctx, t)
	return err
}
