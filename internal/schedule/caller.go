package schedule

import "github.com/google/uuid"

// Caller role in the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleHOD     Role = "hod"
)

// Caller is the externally authenticated identity behind one request. It is
// passed explicitly to every core operation; there is no ambient request user.
type Caller struct {
	ID    uuid.UUID
	Role  Role
	Name  string
	Email string
	// Department-issued student number, empty for the HOD.
	StudentID string
}

func (c Caller) IsHOD() bool {
	return c.Role == RoleHOD
}
