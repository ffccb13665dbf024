package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleFaculty    RoleType = "FACULTY"
	RoleAdmin      RoleType = "ADMIN"
	RoleSuperadmin RoleType = "SUPERADMIN"
)

// IsAdministrative reports whether the role carries admin privileges
func (r RoleType) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Semester represents an academic term
type Semester string

const (
	SemesterFall   Semester = "FALL"
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
)

// DayOfWeek names the weekday of a timetable slot
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "MONDAY"
	DayTuesday   DayOfWeek = "TUESDAY"
	DayWednesday DayOfWeek = "WEDNESDAY"
	DayThursday  DayOfWeek = "THURSDAY"
	DayFriday    DayOfWeek = "FRIDAY"
	DaySaturday  DayOfWeek = "SATURDAY"
	DaySunday    DayOfWeek = "SUNDAY"
)

// ValidDayOfWeek reports whether the value names a known weekday
func ValidDayOfWeek(d DayOfWeek) bool {
	switch d {
	case DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday:
		return true
	}
	return false
}
