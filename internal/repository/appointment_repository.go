package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Davidayo16/HOD-app/internal/model"
)

// ErrSlotTaken is returned when a write would put a second active appointment
// into an occupied (date, time) slot.
var ErrSlotTaken = errors.New("time slot is already booked")

type AppointmentRepository interface {
	// Create the appointment unless an active one already occupies its slot.
	// The check and the insert run in one transaction; returns ErrSlotTaken on
	// collision.
	CreateIfFree(ctx context.Context, appt *model.Appointment) error
	// Persist all fields of an existing appointment. With checkSlot set, the
	// slot is re-verified (excluding the record itself) in the same
	// transaction; returns ErrSlotTaken on collision.
	SaveIfFree(ctx context.Context, appt *model.Appointment, checkSlot bool) error
	// Find an appointment by ID with the owning student preloaded.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// All appointments, newest date/time first.
	ListAll(ctx context.Context) ([]model.Appointment, error)
	// Appointments owned by one student, newest date/time first.
	ListByStudent(ctx context.Context, userID uuid.UUID) ([]model.Appointment, error)
	// Hard delete.
	Delete(ctx context.Context, id uuid.UUID) error
	// Time labels of active appointments on one date.
	ListActiveTimes(ctx context.Context, date time.Time) ([]string, error)
	// HasConflict implements the slot conflict check, see schedule.ConflictChecker.
	HasConflict(ctx context.Context, date time.Time, timeLabel string, excludeID *uuid.UUID) (bool, error)
}

// GORM implementation.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) CreateIfFree(ctx context.Context, appt *model.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, appt.Date, appt.Time, nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return tx.Omit(clause.Associations).Create(appt).Error
	})
	// The partial unique index backstops concurrent writers that both passed
	// the in-transaction check.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

func (r *GormAppointmentRepository) SaveIfFree(ctx context.Context, appt *model.Appointment, checkSlot bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if checkSlot {
			taken, err := slotTaken(tx, appt.Date, appt.Time, &appt.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotTaken
			}
		}
		return tx.Omit(clause.Associations).Save(appt).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).Preload("Student").First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("date DESC, time DESC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) ListByStudent(ctx context.Context, userID uuid.UUID) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Appointment{}, "id = ?", id).Error
}

func (r *GormAppointmentRepository) ListActiveTimes(ctx context.Context, date time.Time) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("date = ?", model.DateOf(date)).
		Where("status IN ?", model.ActiveStatuses).
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *GormAppointmentRepository) HasConflict(ctx context.Context, date time.Time, timeLabel string, excludeID *uuid.UUID) (bool, error) {
	return slotTaken(r.db.WithContext(ctx), model.DateOf(date), timeLabel, excludeID)
}

func slotTaken(tx *gorm.DB, date datatypes.Date, timeLabel string, excludeID *uuid.UUID) (bool, error) {
	q := tx.Model(&model.Appointment{}).
		Where("date = ?", date).
		Where("time = ?", timeLabel).
		Where("status IN ?", model.ActiveStatuses)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
