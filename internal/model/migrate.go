package model

import "gorm.io/gorm"

// AutoMigrate migrates all entities of the appointment core.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Appointment{},
		&Event{},
	); err != nil {
		return err
	}

	// At most one active appointment per (date, time). Terminal statuses do not
	// block the slot, so the uniqueness is scoped with a partial index; this is
	// what makes concurrent check-then-insert safe.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_active_slot
		 ON appointments (date, time)
		 WHERE status IN ('pending', 'approved')`,
	).Error
}
