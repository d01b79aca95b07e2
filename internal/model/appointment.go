package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that keep a slot blocked. Everything else is
// terminal and frees the slot.
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusApproved,
}

func (s AppointmentStatus) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// appointments
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Owning student identity. Never changes after creation.
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"student"`

	// Requester identity snapshot, frozen at submission time.
	StudentName  string `gorm:"type:varchar(255);not null" json:"studentName"`
	StudentEmail string `gorm:"type:varchar(255);not null" json:"studentEmail"`
	StudentID    string `gorm:"type:varchar(64);not null" json:"studentId"`

	Date datatypes.Date `gorm:"type:date;not null;index:idx_appointments_slot" json:"-"`
	Time string         `gorm:"type:varchar(5);not null;index:idx_appointments_slot" json:"time"`

	Purpose string `gorm:"type:text;not null" json:"purpose"`
	Notes   string `gorm:"type:text" json:"notes"`

	Status AppointmentStatus `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`

	// Free-text set only by the head of department.
	HODNotes string `gorm:"type:text" json:"hodNotes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Student *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// Day reports the appointment date as a midnight-UTC time.Time.
func (a *Appointment) Day() time.Time {
	return time.Time(a.Date)
}

// DateOf truncates t to its calendar date in UTC. All appointment dates go
// through this so that equality on the date column is exact.
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}
