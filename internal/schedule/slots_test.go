package schedule

import "testing"

func TestSlots_Grid(t *testing.T) {
	labels := Slots()

	if len(labels) != 8 {
		t.Fatalf("len(Slots()) = %d, want 8", len(labels))
	}

	want := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	for i, label := range labels {
		if label != want[i] {
			t.Fatalf("Slots()[%d] = %q, want %q", i, label, want[i])
		}
	}
}

func TestIsSlot(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"09:00", true},
		{"16:00", true},
		{"17:00", false},
		{"08:00", false},
		{"9:00", false},
		{"09:30", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsSlot(tc.label); got != tc.want {
			t.Errorf("IsSlot(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestAvailability_MarksBookedSlot(t *testing.T) {
	out := Availability([]string{"09:00"})

	if len(out) != 8 {
		t.Fatalf("len = %d, want 8", len(out))
	}
	for _, entry := range out {
		wantAvailable := entry.Time != "09:00"
		if entry.Available != wantAvailable {
			t.Errorf("slot %s available = %v, want %v", entry.Time, entry.Available, wantAvailable)
		}
	}
}

func TestAvailability_EmptyBookedSet(t *testing.T) {
	for _, entry := range Availability(nil) {
		if !entry.Available {
			t.Errorf("slot %s unavailable with no bookings", entry.Time)
		}
	}
}

func TestAvailability_IgnoresUnknownLabels(t *testing.T) {
	out := Availability([]string{"23:00", "junk"})

	for _, entry := range out {
		if !entry.Available {
			t.Errorf("slot %s blocked by label outside the grid", entry.Time)
		}
	}
}
