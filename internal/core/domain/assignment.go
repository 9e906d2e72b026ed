package domain

import "time"

// Assignment links a laboratory to an analysis type it offers.
// At most one assignment may exist per (laboratory, analysis type) pair.
type Assignment struct {
	LabID          string    `json:"lab_id"`
	AnalysisTypeID string    `json:"analysis_type_id"`
	Available      bool      `json:"available"`
	AssignedAt     time.Time `json:"assigned_at"`
}
