package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/api/metrics"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// AppointmentService implements appointment booking and lifecycle changes.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	labs         ports.LaboratoryRepository
	types        ports.AnalysisTypeRepository
	logger       zerolog.Logger
}

func NewAppointmentService(appointments ports.AppointmentRepository, labs ports.LaboratoryRepository, types ports.AnalysisTypeRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{appointments: appointments, labs: labs, types: types, logger: logger}
}

// Create books a new appointment. The referenced laboratory and analysis type
// must exist at creation time and the scheduled time must be strictly in the
// future. References are not re-checked afterwards.
func (s *AppointmentService) Create(ctx context.Context, input ports.AppointmentInput) (*domain.Appointment, error) {
	if _, err := s.labs.FindByID(ctx, input.LabID); err != nil {
		return nil, err
	}
	if _, err := s.types.FindByID(ctx, input.AnalysisTypeID); err != nil {
		return nil, err
	}
	if !input.ScheduledAt.After(time.Now()) {
		return nil, domain.ErrPastSchedule
	}

	status := domain.AppointmentScheduled
	if input.Status != "" {
		status = domain.AppointmentStatus(input.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	a := &domain.Appointment{
		PatientID:      input.PatientID,
		LabID:          input.LabID,
		AnalysisTypeID: input.AnalysisTypeID,
		ScheduledAt:    input.ScheduledAt,
		Status:         status,
		Notes:          input.Notes,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.appointments.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	metrics.AppointmentsCreatedTotal.Inc()
	s.logger.Info().Str("appointment_id", created.ID).Str("lab_id", created.LabID).Msg("appointment created")
	return created, nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.appointments.FindByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context) ([]*domain.Appointment, error) {
	return s.appointments.FindAll(ctx)
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error) {
	return s.appointments.FindByPatient(ctx, patientID)
}

func (s *AppointmentService) ListByLab(ctx context.Context, labID string) ([]*domain.Appointment, error) {
	return s.appointments.FindByLab(ctx, labID)
}

func (s *AppointmentService) ListUpcomingByLab(ctx context.Context, labID string) ([]*domain.Appointment, error) {
	return s.appointments.FindUpcomingByLab(ctx, labID, time.Now())
}

func (s *AppointmentService) ListByStatus(ctx context.Context, status string) ([]*domain.Appointment, error) {
	st := domain.AppointmentStatus(status)
	if !st.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.appointments.FindByStatus(ctx, st)
}

// Update replaces the mutable fields of an existing appointment.
func (s *AppointmentService) Update(ctx context.Context, id string, input ports.AppointmentInput) (*domain.Appointment, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := domain.AppointmentStatus(input.Status)
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	a.PatientID = input.PatientID
	a.LabID = input.LabID
	a.AnalysisTypeID = input.AnalysisTypeID
	a.ScheduledAt = input.ScheduledAt
	a.Status = status
	a.Notes = input.Notes

	return s.appointments.Update(ctx, a)
}

// ChangeStatus overwrites the status. Set membership is the only restriction;
// any status may move to any other. On rejection the stored record is
// untouched.
func (s *AppointmentService) ChangeStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	st := domain.AppointmentStatus(status)
	if !st.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	a.Status = st
	return s.appointments.Update(ctx, a)
}

// Delete removes the appointment permanently.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.appointments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}
