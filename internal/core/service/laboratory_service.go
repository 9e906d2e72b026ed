package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// LaboratoryService implements laboratory management and analysis assignment.
type LaboratoryService struct {
	labs        ports.LaboratoryRepository
	types       ports.AnalysisTypeRepository
	assignments ports.AssignmentRepository
	logger      zerolog.Logger
}

func NewLaboratoryService(labs ports.LaboratoryRepository, types ports.AnalysisTypeRepository, assignments ports.AssignmentRepository, logger zerolog.Logger) *LaboratoryService {
	return &LaboratoryService{labs: labs, types: types, assignments: assignments, logger: logger}
}

// Create persists a new active laboratory. The unique email index is the
// authoritative duplicate guard; the lookup here is a fast path.
func (s *LaboratoryService) Create(ctx context.Context, input ports.LaboratoryInput) (*domain.Laboratory, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.labs.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	lab := &domain.Laboratory{
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Email:     email,
		Specialty: input.Specialty,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.labs.Create(ctx, lab)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("lab_id", created.ID).Str("specialty", created.Specialty).Msg("laboratory created")
	return created, nil
}

func (s *LaboratoryService) GetByID(ctx context.Context, id string) (*domain.Laboratory, error) {
	return s.labs.FindByID(ctx, id)
}

func (s *LaboratoryService) List(ctx context.Context) ([]*domain.Laboratory, error) {
	return s.labs.FindAll(ctx)
}

func (s *LaboratoryService) ListActive(ctx context.Context) ([]*domain.Laboratory, error) {
	return s.labs.FindActive(ctx)
}

func (s *LaboratoryService) ListBySpecialty(ctx context.Context, specialty string) ([]*domain.Laboratory, error) {
	return s.labs.FindBySpecialty(ctx, specialty)
}

func (s *LaboratoryService) SearchByName(ctx context.Context, name string) ([]*domain.Laboratory, error) {
	return s.labs.SearchByName(ctx, name)
}

// Update replaces the mutable fields, re-checking email uniqueness when the
// address changed.
func (s *LaboratoryService) Update(ctx context.Context, id string, input ports.LaboratoryInput) (*domain.Laboratory, error) {
	lab, err := s.labs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != lab.Email {
		if other, err := s.labs.FindByEmail(ctx, email); err == nil && other != nil && other.ID != id {
			return nil, domain.ErrDuplicateEmail
		}
	}

	lab.Name = input.Name
	lab.Address = input.Address
	lab.Phone = input.Phone
	lab.Email = email
	lab.Specialty = input.Specialty
	lab.Active = input.Active

	return s.labs.Update(ctx, lab)
}

// SoftDelete marks the laboratory inactive. The record stays retrievable by
// ID and appointments referencing it are untouched.
func (s *LaboratoryService) SoftDelete(ctx context.Context, id string) error {
	lab, err := s.labs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	lab.Active = false
	_, err = s.labs.Update(ctx, lab)
	return err
}

// AssignAnalysis links an analysis type to a laboratory. Both sides must
// exist and the pair must not already be assigned.
func (s *LaboratoryService) AssignAnalysis(ctx context.Context, labID string, input ports.AssignAnalysisInput) (*domain.Assignment, error) {
	if _, err := s.labs.FindByID(ctx, labID); err != nil {
		return nil, err
	}
	if _, err := s.types.FindByID(ctx, input.AnalysisTypeID); err != nil {
		return nil, err
	}

	a := &domain.Assignment{
		LabID:          labID,
		AnalysisTypeID: input.AnalysisTypeID,
		Available:      input.Available,
		AssignedAt:     time.Now().UTC(),
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info().Str("lab_id", labID).Str("analysis_type_id", input.AnalysisTypeID).Msg("analysis assigned")
	return a, nil
}

func (s *LaboratoryService) ListAssignments(ctx context.Context, labID string) ([]*domain.Assignment, error) {
	if _, err := s.labs.FindByID(ctx, labID); err != nil {
		return nil, err
	}
	return s.assignments.FindByLab(ctx, labID)
}
