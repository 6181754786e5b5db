package models

type TimeSlot string

const (
	SlotLunchEarly  TimeSlot = "11:00-13:00"
	SlotLunchLate   TimeSlot = "13:00-15:00"
	SlotDinnerEarly TimeSlot = "17:00-19:00"
	SlotDinnerLate  TimeSlot = "19:00-21:00"
	SlotNight       TimeSlot = "21:00-23:00"
)

// TimeSlots lists the bookable slots in canonical order.
var TimeSlots = []TimeSlot{
	SlotLunchEarly,
	SlotLunchLate,
	SlotDinnerEarly,
	SlotDinnerLate,
	SlotNight,
}

// ParseTimeSlot matches s against the canonical slots exactly (case-sensitive, no trimming).
func ParseTimeSlot(s string) (TimeSlot, bool) {
	for _, slot := range TimeSlots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}
