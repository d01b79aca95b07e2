package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit event type.
type EventType string

const (
	EventTypeAppointmentCreated       EventType = "appointment_created"
	EventTypeAppointmentUpdated       EventType = "appointment_updated"
	EventTypeAppointmentStatusChanged EventType = "appointment_status_changed"
	EventTypeAppointmentDeleted       EventType = "appointment_deleted"
)

// events — audit trail of appointment mutations
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`

	Details string `gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
