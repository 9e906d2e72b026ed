package domain

import "time"

// ResultStatus is the lifecycle state of an analysis result.
type ResultStatus string

const (
	ResultPending    ResultStatus = "PENDING"
	ResultInProgress ResultStatus = "IN_PROGRESS"
	ResultCompleted  ResultStatus = "COMPLETED"
	ResultReviewed   ResultStatus = "REVIEWED"
)

// IsValid reports whether s is a member of the closed status set. Any member
// may move to any other member; there is no transition graph.
func (s ResultStatus) IsValid() bool {
	switch s {
	case ResultPending, ResultInProgress, ResultCompleted, ResultReviewed:
		return true
	}
	return false
}

// Result holds the outcome of the analysis performed for one appointment.
// At most one result may exist per appointment.
type Result struct {
	ID             string       `json:"id"`
	AppointmentID  string       `json:"appointment_id"`
	TechnicianID   string       `json:"technician_id"`
	PDFPath        string       `json:"pdf_path,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	ResultDate     time.Time    `json:"result_date"`
	Status         ResultStatus `json:"status"`
	MeasuredValues string       `json:"measured_values,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
