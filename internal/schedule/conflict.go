package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConflictChecker answers whether an active appointment already occupies a
// slot. It is independent of the storage engine; in tests it can be an
// in-memory fake.
type ConflictChecker interface {
	// HasConflict reports whether an appointment with the given calendar date
	// and time label exists in an active status. A non-nil excludeID leaves
	// that record out of the check, for updates of an existing appointment.
	HasConflict(ctx context.Context, date time.Time, timeLabel string, excludeID *uuid.UUID) (bool, error)
}
