package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/repository"
	"github.com/Davidayo16/HOD-app/internal/schedule"
)

// AppointmentService is the appointment lifecycle controller: it decides who
// may create, read, change and delete appointment requests, and guards the
// one-active-appointment-per-slot rule on every write.
type AppointmentService struct {
	appts  repository.AppointmentRepository
	users  repository.UserRepository
	events repository.EventRepository

	conflicts schedule.ConflictChecker
	policy    schedule.TransitionPolicy
}

func NewAppointmentService(
	appts repository.AppointmentRepository,
	users repository.UserRepository,
	events repository.EventRepository,
	policy schedule.TransitionPolicy,
) *AppointmentService {
	return &AppointmentService{
		appts:     appts,
		users:     users,
		events:    events,
		conflicts: appts,
		policy:    policy,
	}
}

type CreateInput struct {
	Date    time.Time
	Time    string
	Purpose string
	Notes   string
}

// UpdateInput carries partial update fields; nil means "leave unchanged".
// Notes set to an empty string clears the field.
type UpdateInput struct {
	Date    *time.Time
	Time    *string
	Purpose *string
	Notes   *string
}

// Create registers a new pending appointment request for the calling student.
func (s *AppointmentService) Create(ctx context.Context, caller schedule.Caller, in CreateInput) (*model.Appointment, error) {
	if caller.IsHOD() {
		return nil, schedule.E(schedule.KindAuthorization, "HOD cannot create appointments")
	}

	if in.Date.IsZero() {
		return nil, schedule.E(schedule.KindValidation, "date is required")
	}
	if !schedule.IsSlot(in.Time) {
		return nil, schedule.E(schedule.KindValidation, "time must be one of the office-hour slots")
	}
	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" {
		return nil, schedule.E(schedule.KindValidation, "purpose is required")
	}

	taken, err := s.conflicts.HasConflict(ctx, in.Date, in.Time, nil)
	if err != nil {
		return nil, schedule.WrapStore("check slot", err)
	}
	if taken {
		return nil, schedule.E(schedule.KindSlotConflict, "this time slot is already booked")
	}

	studentID := caller.StudentID
	if studentID == "" {
		studentID = "N/A"
	}

	appt := &model.Appointment{
		ID:           uuid.New(),
		UserID:       caller.ID,
		StudentName:  caller.Name,
		StudentEmail: caller.Email,
		StudentID:    studentID,
		Date:         model.DateOf(in.Date),
		Time:         in.Time,
		Purpose:      purpose,
		Notes:        strings.TrimSpace(in.Notes),
		Status:       model.AppointmentStatusPending,
	}

	// The conflict check above is advisory; the transactional insert is what
	// actually closes the race between concurrent requests for one slot.
	if err := s.appts.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, schedule.E(schedule.KindSlotConflict, "this time slot is already booked")
		}
		return nil, schedule.WrapStore("create appointment", err)
	}

	s.record(ctx, model.EventTypeAppointmentCreated, caller, appt,
		fmt.Sprintf("requested %s %s", appt.Day().Format("2006-01-02"), appt.Time))

	s.attachStudent(ctx, appt)
	return appt, nil
}

// Get returns one appointment. Students may only read their own.
func (s *AppointmentService) Get(ctx context.Context, caller schedule.Caller, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsHOD() && appt.UserID != caller.ID {
		return nil, schedule.E(schedule.KindAuthorization, "access denied")
	}
	return appt, nil
}

// List returns every appointment for the HOD and only the caller's own for a
// student, newest date/time first.
func (s *AppointmentService) List(ctx context.Context, caller schedule.Caller) ([]model.Appointment, error) {
	var (
		appts []model.Appointment
		err   error
	)
	if caller.IsHOD() {
		appts, err = s.appts.ListAll(ctx)
	} else {
		appts, err = s.appts.ListByStudent(ctx, caller.ID)
	}
	if err != nil {
		return nil, schedule.WrapStore("list appointments", err)
	}
	return appts, nil
}

// Update applies the supplied fields to an appointment. Students may only
// touch their own pending requests; a changed time re-runs the conflict check
// against the effective date.
func (s *AppointmentService) Update(ctx context.Context, caller schedule.Caller, id uuid.UUID, in UpdateInput) (*model.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsHOD() {
		if appt.UserID != caller.ID {
			return nil, schedule.E(schedule.KindAuthorization, "access denied")
		}
		if appt.Status != model.AppointmentStatusPending {
			return nil, schedule.E(schedule.KindInvalidState, "can only update pending appointments")
		}
	}

	slotChanged := in.Time != nil && *in.Time != appt.Time
	if in.Time != nil && !schedule.IsSlot(*in.Time) {
		return nil, schedule.E(schedule.KindValidation, "time must be one of the office-hour slots")
	}

	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, schedule.E(schedule.KindValidation, "date must not be empty")
		}
		appt.Date = model.DateOf(*in.Date)
	}
	if in.Time != nil {
		appt.Time = *in.Time
	}
	if in.Purpose != nil && strings.TrimSpace(*in.Purpose) != "" {
		appt.Purpose = strings.TrimSpace(*in.Purpose)
	}
	if in.Notes != nil {
		// An explicit empty value clears the notes.
		appt.Notes = strings.TrimSpace(*in.Notes)
	}

	if slotChanged {
		taken, err := s.conflicts.HasConflict(ctx, appt.Day(), appt.Time, &appt.ID)
		if err != nil {
			return nil, schedule.WrapStore("check slot", err)
		}
		if taken {
			return nil, schedule.E(schedule.KindSlotConflict, "this time slot is already booked")
		}
	}

	if err := s.appts.SaveIfFree(ctx, appt, slotChanged); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, schedule.E(schedule.KindSlotConflict, "this time slot is already booked")
		}
		return nil, schedule.WrapStore("update appointment", err)
	}

	s.record(ctx, model.EventTypeAppointmentUpdated, caller, appt, "")

	s.attachStudent(ctx, appt)
	return appt, nil
}

// SetStatus moves an appointment to the requested status and, when supplied,
// overwrites the HOD notes. Restricting this to HOD callers is the routing
// layer's job, not this operation's.
func (s *AppointmentService) SetStatus(ctx context.Context, caller schedule.Caller, id uuid.UUID, status model.AppointmentStatus, hodNotes string) (*model.Appointment, error) {
	if !schedule.ValidStatus(status) {
		return nil, schedule.E(schedule.KindValidation, fmt.Sprintf("unknown status %q", status))
	}

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allowed(appt.Status, status) {
		return nil, schedule.E(schedule.KindInvalidState,
			fmt.Sprintf("cannot move appointment from %s to %s", appt.Status, status))
	}

	from := appt.Status
	appt.Status = status
	if strings.TrimSpace(hodNotes) != "" {
		appt.HODNotes = hodNotes
	}

	// Reviving a terminal appointment re-blocks its slot, so the slot has to
	// be free again.
	checkSlot := !from.Active() && status.Active()

	if err := s.appts.SaveIfFree(ctx, appt, checkSlot); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, schedule.E(schedule.KindSlotConflict, "this time slot is already booked")
		}
		return nil, schedule.WrapStore("update appointment status", err)
	}

	if from != status {
		s.record(ctx, model.EventTypeAppointmentStatusChanged, caller, appt,
			fmt.Sprintf("%s -> %s", from, status))
	}

	return appt, nil
}

// Delete removes an appointment permanently. Students may only delete their
// own; the HOD may delete any.
func (s *AppointmentService) Delete(ctx context.Context, caller schedule.Caller, id uuid.UUID) error {
	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsHOD() && appt.UserID != caller.ID {
		return schedule.E(schedule.KindAuthorization, "access denied")
	}

	if err := s.appts.Delete(ctx, id); err != nil {
		return schedule.WrapStore("delete appointment", err)
	}

	s.record(ctx, model.EventTypeAppointmentDeleted, caller, appt, "")
	return nil
}

// Availability reports, for every office-hour slot of one date, whether it is
// still bookable.
func (s *AppointmentService) Availability(ctx context.Context, _ schedule.Caller, date time.Time) ([]schedule.SlotAvailability, error) {
	if date.IsZero() {
		return nil, schedule.E(schedule.KindValidation, "date is required")
	}

	booked, err := s.appts.ListActiveTimes(ctx, date)
	if err != nil {
		return nil, schedule.WrapStore("list booked slots", err)
	}
	return schedule.Availability(booked), nil
}

func (s *AppointmentService) load(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.E(schedule.KindNotFound, "appointment not found")
		}
		return nil, schedule.WrapStore("load appointment", err)
	}
	return appt, nil
}

func (s *AppointmentService) attachStudent(ctx context.Context, appt *model.Appointment) {
	if appt.Student != nil {
		return
	}
	if u, err := s.users.FindByID(ctx, appt.UserID); err == nil {
		appt.Student = u
	}
}

// record writes an audit event; a failed audit write never fails the operation.
func (s *AppointmentService) record(ctx context.Context, t model.EventType, caller schedule.Caller, appt *model.Appointment, details string) {
	callerID := caller.ID
	apptID := appt.ID
	_ = s.events.Record(ctx, &model.Event{
		ID:            uuid.New(),
		EventType:     t,
		UserID:        &callerID,
		AppointmentID: &apptID,
		Details:       details,
	})
}
