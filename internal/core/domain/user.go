package domain

import "time"

// Roles recognised across the platform. Stored verbatim on the user record
// and embedded in issued tokens.
const (
	RoleAdmin   = "ADMIN"
	RolePatient = "PATIENT"
	RoleLabTech = "LAB_TECH"
	RoleDoctor  = "DOCTOR"
)

// ValidRole reports whether r is one of the recognised roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RolePatient, RoleLabTech, RoleDoctor:
		return true
	}
	return false
}

// User models an authenticated actor. Emails are stored lower-cased; the
// password hash is never serialised.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
