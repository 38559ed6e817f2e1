package constants

import "fmt"

const (
	RoleStudent   = "student"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// Role error message templates
const (
	ErrOnlyStudentsCanAccess   = "Only students can access %s."
	ErrOnlyOrganizersCanAccess = "Access denied. Organizer privileges required for %s."
	ErrOnlyAdminsCanAccess     = "Access denied. Admin privileges required for %s."
)

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorOrganizer(feature string) string {
	return fmt.Sprintf(ErrOnlyOrganizersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleOrganizer,
		RoleAdmin,
	}

	OrganizerAndAbove = []string{
		RoleOrganizer,
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleStudent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
