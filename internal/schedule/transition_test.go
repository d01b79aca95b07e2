package schedule

import (
	"testing"

	"github.com/Davidayo16/HOD-app/internal/model"
)

func TestPermissivePolicy_AllowsAnyTransition(t *testing.T) {
	for _, from := range Statuses {
		for _, to := range Statuses {
			if !PermissivePolicy.Allowed(from, to) {
				t.Errorf("PermissivePolicy forbids %s -> %s", from, to)
			}
		}
	}
}

func TestTransitionPolicy_SameStatusAlwaysAllowed(t *testing.T) {
	empty := TransitionPolicy{}

	for _, s := range Statuses {
		if !empty.Allowed(s, s) {
			t.Errorf("empty policy forbids %s -> %s", s, s)
		}
	}
}

func TestTransitionPolicy_StricterTable(t *testing.T) {
	strict := TransitionPolicy{
		model.AppointmentStatusPending: {
			model.AppointmentStatusApproved,
			model.AppointmentStatusRejected,
		},
		model.AppointmentStatusApproved: {
			model.AppointmentStatusCompleted,
			model.AppointmentStatusCancelled,
		},
	}

	if !strict.Allowed(model.AppointmentStatusPending, model.AppointmentStatusApproved) {
		t.Errorf("pending -> approved should be allowed")
	}
	if strict.Allowed(model.AppointmentStatusPending, model.AppointmentStatusCompleted) {
		t.Errorf("pending -> completed should be forbidden")
	}
	if strict.Allowed(model.AppointmentStatusCompleted, model.AppointmentStatusPending) {
		t.Errorf("terminal -> active should be forbidden")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	if ValidStatus("archived") {
		t.Errorf("ValidStatus(archived) = true")
	}
	if ValidStatus("") {
		t.Errorf("ValidStatus(\"\") = true")
	}
}
