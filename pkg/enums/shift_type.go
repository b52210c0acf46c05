package enums

import "fmt"

// ShiftType classifies a scheduled shift's slot within the day.
type ShiftType string

const (
	ShiftTypeMorning ShiftType = "morning"
	ShiftTypeEvening ShiftType = "evening"
	ShiftTypeNight   ShiftType = "night"
	ShiftTypeFullDay ShiftType = "full_day"
)

var validShiftTypes = []ShiftType{
	ShiftTypeMorning,
	ShiftTypeEvening,
	ShiftTypeNight,
	ShiftTypeFullDay,
}

// String implements fmt.Stringer.
func (s ShiftType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShiftType.
func (s ShiftType) IsValid() bool {
	for _, candidate := range validShiftTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShiftType converts raw input into a ShiftType.
func ParseShiftType(value string) (ShiftType, error) {
	for _, candidate := range validShiftTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shift type %q", value)
}
