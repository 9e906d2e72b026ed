package domain

import "time"

// AnalysisType is a kind of clinical analysis offered by laboratories.
type AnalysisType struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	TurnaroundDays int       `json:"turnaround_days"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
