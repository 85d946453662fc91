package services

// TimeSlots is the ordered list of bookable start times shared by the intake
// wizard, the admin booking form and the calendar.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	"18:00", "18:30",
}

// SlotIndex returns the position of slot in TimeSlots, or -1.
func SlotIndex(slot string) int {
	for i, s := range TimeSlots {
		if s == slot {
			return i
		}
	}
	return -1
}

func IsTimeSlot(slot string) bool {
	return SlotIndex(slot) >= 0
}
