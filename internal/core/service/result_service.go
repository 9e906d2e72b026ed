package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/api/metrics"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// ResultService implements analysis-result management.
type ResultService struct {
	repo   ports.ResultRepository
	logger zerolog.Logger
}

func NewResultService(repo ports.ResultRepository, logger zerolog.Logger) *ResultService {
	return &ResultService{repo: repo, logger: logger}
}

// Create records a result for an appointment. At most one result may exist
// per appointment; the unique index on appointment_id is the authoritative
// guard and the lookup here is a fast path.
func (s *ResultService) Create(ctx context.Context, input ports.CreateResultInput) (*domain.Result, error) {
	if existing, err := s.repo.FindByAppointment(ctx, input.AppointmentID); err == nil && existing != nil {
		return nil, domain.ErrResultExists
	}

	status := domain.ResultPending
	if input.Status != "" {
		status = domain.ResultStatus(input.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	resultDate := input.ResultDate
	if resultDate.IsZero() {
		resultDate = time.Now().UTC()
	}

	r := &domain.Result{
		AppointmentID:  input.AppointmentID,
		TechnicianID:   input.TechnicianID,
		PDFPath:        input.PDFPath,
		Notes:          input.Notes,
		ResultDate:     resultDate,
		Status:         status,
		MeasuredValues: input.MeasuredValues,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, err
	}

	metrics.ResultsCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.logger.Info().Str("result_id", created.ID).Str("appointment_id", created.AppointmentID).Msg("result created")
	return created, nil
}

func (s *ResultService) GetByID(ctx context.Context, id string) (*domain.Result, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ResultService) GetByAppointment(ctx context.Context, appointmentID string) (*domain.Result, error) {
	return s.repo.FindByAppointment(ctx, appointmentID)
}

func (s *ResultService) List(ctx context.Context) ([]*domain.Result, error) {
	return s.repo.FindAll(ctx)
}

func (s *ResultService) ListByTechnician(ctx context.Context, technicianID string) ([]*domain.Result, error) {
	return s.repo.FindByTechnician(ctx, technicianID)
}

func (s *ResultService) ListByStatus(ctx context.Context, status string) ([]*domain.Result, error) {
	st := domain.ResultStatus(status)
	if !st.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.FindByStatus(ctx, st)
}

// Update applies a partial update; only the provided fields change.
func (s *ResultService) Update(ctx context.Context, id string, input ports.UpdateResultInput) (*domain.Result, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		st := domain.ResultStatus(*input.Status)
		if !st.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		r.Status = st
	}
	if input.PDFPath != nil {
		r.PDFPath = *input.PDFPath
	}
	if input.Notes != nil {
		r.Notes = *input.Notes
	}
	if input.ResultDate != nil {
		r.ResultDate = *input.ResultDate
	}
	if input.MeasuredValues != nil {
		r.MeasuredValues = *input.MeasuredValues
	}

	return s.repo.Update(ctx, r)
}

// ChangeStatus overwrites the status; set membership is the only restriction.
func (s *ResultService) ChangeStatus(ctx context.Context, id, status string) (*domain.Result, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	st := domain.ResultStatus(status)
	if !st.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	r.Status = st
	return s.repo.Update(ctx, r)
}

// Delete removes the result permanently.
func (s *ResultService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
