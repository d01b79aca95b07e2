package schedule

import "github.com/Davidayo16/HOD-app/internal/model"

// Statuses lists every defined appointment status.
var Statuses = []model.AppointmentStatus{
	model.AppointmentStatusPending,
	model.AppointmentStatusApproved,
	model.AppointmentStatusRejected,
	model.AppointmentStatusCompleted,
	model.AppointmentStatusCancelled,
}

// ValidStatus reports whether s is one of the defined statuses.
func ValidStatus(s model.AppointmentStatus) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// TransitionPolicy is the set of status changes SetStatus accepts, keyed by the
// current status. Setting the status a record already has is always allowed, so
// repeated identical calls stay idempotent.
type TransitionPolicy map[model.AppointmentStatus][]model.AppointmentStatus

// Allowed reports whether the policy permits moving from one status to another.
func (p TransitionPolicy) Allowed(from, to model.AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, next := range p[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PermissivePolicy allows any status change between the five defined statuses.
// This matches the historical behaviour of the system, where the HOD may move a
// request to any status at any time, including reviving a terminal one. A
// stricter policy is a data change here, not a code change.
var PermissivePolicy = permissive()

func permissive() TransitionPolicy {
	p := make(TransitionPolicy, len(Statuses))
	for _, from := range Statuses {
		for _, to := range Statuses {
			if from != to {
				p[from] = append(p[from], to)
			}
		}
	}
	return p
}
