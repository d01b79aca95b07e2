package schedule

import "fmt"

// Office hours: hourly slots from 09:00 up to (not including) 17:00.
const (
	OpenHour  = 9
	CloseHour = 17
)

// SlotAvailability is one entry of the daily availability answer.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Slots returns the bookable time labels of one office day, in order,
// zero-padded "HH:00".
func Slots() []string {
	labels := make([]string, 0, CloseHour-OpenHour)
	for hour := OpenHour; hour < CloseHour; hour++ {
		labels = append(labels, fmt.Sprintf("%02d:00", hour))
	}
	return labels
}

// IsSlot reports whether label belongs to the office-hours grid.
func IsSlot(label string) bool {
	for _, s := range Slots() {
		if s == label {
			return true
		}
	}
	return false
}

// Availability marks every grid slot, flagging as unavailable the labels that
// appear in booked. Pure function of the booked set; unknown labels in booked
// are ignored.
func Availability(booked []string) []SlotAvailability {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	labels := Slots()
	out := make([]SlotAvailability, 0, len(labels))
	for _, label := range labels {
		_, blocked := taken[label]
		out = append(out, SlotAvailability{Time: label, Available: !blocked})
	}
	return out
}
