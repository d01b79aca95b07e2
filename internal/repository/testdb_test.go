package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Davidayo16/HOD-app/internal/model"
)

// newTestDB opens an in-memory sqlite database with a hand-written,
// sqlite-friendly schema (the production DDL relies on postgres defaults).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// One connection keeps every open transaction on the same in-memory
	// database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			student_id TEXT,
			role TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE appointments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			student_name TEXT NOT NULL,
			student_email TEXT NOT NULL,
			student_id TEXT NOT NULL,
			date DATE NOT NULL,
			time TEXT NOT NULL,
			purpose TEXT NOT NULL,
			notes TEXT,
			status TEXT NOT NULL,
			hod_notes TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE UNIQUE INDEX uq_appointments_active_slot
			ON appointments (date, time)
			WHERE status IN ('pending', 'approved');`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			user_id TEXT,
			appointment_id TEXT,
			details TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		StudentID:    "CSC/2021/001",
		Role:         model.UserRoleStudent,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func newAppointment(owner *model.User, date time.Time, timeLabel string, status model.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		ID:           uuid.New(),
		UserID:       owner.ID,
		StudentName:  owner.Name,
		StudentEmail: owner.Email,
		StudentID:    owner.StudentID,
		Date:         model.DateOf(date),
		Time:         timeLabel,
		Purpose:      "project discussion",
		Status:       status,
	}
}
