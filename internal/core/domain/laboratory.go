package domain

import "time"

// Laboratory is a clinical laboratory offering analysis services.
// Soft-deleted labs keep their record (Active=false) and stay retrievable by
// ID, but are excluded from active listings.
type Laboratory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
