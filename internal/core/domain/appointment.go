package domain

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// IsValid reports whether s is a member of the closed status set. Any member
// may move to any other member; there is no transition graph.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment books a patient into a laboratory for one analysis type.
// Lab and analysis-type references are checked at creation time only; a later
// soft delete of either leaves the appointment untouched.
type Appointment struct {
	ID             string            `json:"id"`
	PatientID      string            `json:"patient_id"`
	LabID          string            `json:"lab_id"`
	AnalysisTypeID string            `json:"analysis_type_id"`
	ScheduledAt    time.Time         `json:"scheduled_at"`
	Status         AppointmentStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
