package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/repository"
	"github.com/Davidayo16/HOD-app/internal/schedule"
)

// newTestDB opens an in-memory sqlite database with a hand-written,
// sqlite-friendly schema (the production DDL relies on postgres defaults).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

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

type fixture struct {
	db  *gorm.DB
	svc *AppointmentService
	ids *IdentityService

	student  schedule.Caller
	student2 schedule.Caller
	hod      schedule.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	apptRepo := repository.NewGormAppointmentRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	eventRepo := repository.NewGormEventRepository(db)

	f := &fixture{
		db:  db,
		svc: NewAppointmentService(apptRepo, userRepo, eventRepo, schedule.PermissivePolicy),
		ids: NewIdentityService(userRepo, []byte("test-secret"), testTokenTTL),
	}

	f.student = f.seedUser(t, "Ada Obi", "ada@uni.edu", "CSC/2021/001", model.UserRoleStudent)
	f.student2 = f.seedUser(t, "Ben Eze", "ben@uni.edu", "CSC/2021/002", model.UserRoleStudent)
	f.hod = f.seedUser(t, "Prof. Musa", "hod@uni.edu", "", model.UserRoleHOD)

	return f
}

func (f *fixture) seedUser(t *testing.T, name, email, studentID string, role model.UserRole) schedule.Caller {
	t.Helper()

	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		StudentID:    studentID,
		Role:         role,
	}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return schedule.Caller{
		ID:        u.ID,
		Role:      schedule.Role(role),
		Name:      name,
		Email:     email,
		StudentID: studentID,
	}
}
