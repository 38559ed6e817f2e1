package auth

import (
	"github.com/google/uuid"

	"eventhub_backend/internals/constants"
	eventModel "eventhub_backend/internals/features/events/model"
)

// Capability checks live here so each route declares the policy once and the
// rules stay testable without HTTP plumbing.

// CanManageEvent: the owning organizer or an admin may mutate an event.
func CanManageEvent(userID uuid.UUID, role string, ev *eventModel.EventModel) bool {
	if role == constants.RoleAdmin {
		return true
	}
	return role == constants.RoleOrganizer && ev.EventOrganizerID == userID
}

// CanPayRegistration: the owning student may pay; any non-student role
// (organizer/admin) bypasses the ownership check. Quirk kept from the
// observed behavior.
func CanPayRegistration(userID uuid.UUID, role string, registrationStudentID uuid.UUID) bool {
	if role != constants.RoleStudent {
		return true
	}
	return registrationStudentID == userID
}

// CanSeeAllRegistrations: /registrations/me returns every record for
// non-student roles. Ambiguous by design, see DESIGN.md.
func CanSeeAllRegistrations(role string) bool {
	return role != constants.RoleStudent
}
